package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/saju/internal/chart"
)

// LoadFile compiles every profile declared in one CUE file.
func LoadFile(path string) ([]chart.BirthProfile, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{fmt.Errorf("read profile file: %w", err)}
	}
	v := cuecontext.New().CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err)}
	}
	return compileRoot(v)
}

// LoadDir compiles the CUE package in dir. All .cue files in the
// directory must share one package clause.
func LoadDir(dir string) ([]chart.BirthProfile, []error) {
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{fmt.Errorf("no CUE instances loaded from %s", dir)}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{fmt.Errorf("loading CUE files: %w", inst.Err)}
	}
	v := cuecontext.New().BuildInstance(inst)
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err)}
	}
	return compileRoot(v)
}

// Load dispatches to LoadFile or LoadDir.
func Load(path string) ([]chart.BirthProfile, []error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, []error{fmt.Errorf("profile path: %w", err)}
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// LoadNamed loads path and returns the profile called name. An empty name
// selects the only profile; it is an error when there are several.
func LoadNamed(path, name string) (chart.BirthProfile, error) {
	profiles, errs := Load(path)
	if len(errs) > 0 {
		return chart.BirthProfile{}, errs[0]
	}
	if name == "" {
		if len(profiles) != 1 {
			return chart.BirthProfile{}, fmt.Errorf("%s declares %d profiles; choose one by name", filepath.Base(path), len(profiles))
		}
		return profiles[0], nil
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return chart.BirthProfile{}, fmt.Errorf("profile %q not found in %s", name, path)
}

// CompileData compiles a profile from a decoded map, such as one read from
// YAML. It goes through the same schema as CUE sources.
func CompileData(data map[string]any) (*chart.BirthProfile, error) {
	v := cuecontext.New().Encode(data)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileProfile(v)
}

func compileRoot(v cue.Value) ([]chart.BirthProfile, []error) {
	pv := v.LookupPath(cue.ParsePath("profile"))
	if !pv.Exists() {
		return nil, []error{&CompileError{Field: "profile", Code: ErrCodeMissingField, Message: "no profiles declared", Pos: v.Pos()}}
	}
	profiles, errs := CompileProfiles(pv)
	if len(profiles) == 0 && len(errs) == 0 {
		errs = append(errs, &CompileError{Field: "profile", Code: ErrCodeMissingField, Message: "no profiles declared", Pos: pv.Pos()})
	}
	return profiles, errs
}
