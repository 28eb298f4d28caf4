package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/compiler"
)

// Error code constants for CLI-level failures. Compile errors keep their
// E1xx codes and profile validation errors their E2xx codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path or profile not found
	ErrCodeStore       = "E008" // Archive open/read/write failed
	ErrCodeInvalidArgs = "E009" // Flag values out of range
)

// LoadError is one profile loading failure with its code and position.
type LoadError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

func (e *LoadError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadProfiles compiles every profile at path (a CUE file or package
// directory) and converts failures to LoadErrors.
func LoadProfiles(path string) ([]chart.BirthProfile, []*LoadError) {
	if _, err := os.Stat(path); err != nil {
		return nil, []*LoadError{{Code: ErrCodeNotFound, Message: fmt.Sprintf("profile path not found: %s", path)}}
	}
	profiles, errs := compiler.Load(path)
	out := make([]*LoadError, 0, len(errs))
	for _, err := range errs {
		out = append(out, convertError(err)...)
	}
	return profiles, out
}

// loadProfile returns the profile called name from path; an empty name
// selects the only profile.
func loadProfile(path, name string) (chart.BirthProfile, error) {
	profiles, errs := LoadProfiles(path)
	if len(errs) > 0 {
		return chart.BirthProfile{}, errs[0]
	}
	if name == "" {
		if len(profiles) != 1 {
			return chart.BirthProfile{}, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("%s declares %d profiles; choose one with --name", path, len(profiles))}
		}
		return profiles[0], nil
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return chart.BirthProfile{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("profile %q not found in %s", name, path)}
}

// convertError maps compiler and chart errors to LoadErrors. A profile
// that fails several validation rules yields one LoadError per rule.
func convertError(err error) []*LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		le := &LoadError{Code: compileErr.Code, Field: compileErr.Field, Message: compileErr.Message}
		if compileErr.Pos.IsValid() {
			le.File = compileErr.Pos.Filename()
			le.Line = compileErr.Pos.Line()
		}
		return []*LoadError{le}
	}
	var verrs chart.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]*LoadError, 0, len(verrs))
		for _, v := range verrs {
			out = append(out, &LoadError{Code: v.Code, Field: v.Field, Message: v.Message})
		}
		return out
	}
	var verr chart.ValidationError
	if errors.As(err, &verr) {
		return []*LoadError{{Code: verr.Code, Field: verr.Field, Message: verr.Message}}
	}
	return []*LoadError{{Code: ErrCodeGeneric, Message: err.Error()}}
}

// loadFailure writes a profile error and returns the exit error.
func loadFailure(f *OutputFormatter, err error) error {
	var le *LoadError
	if !errors.As(err, &le) {
		le = &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}
	if outErr := f.Error(le.Code, le.Message, le); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "failed to load profile", err)
}
