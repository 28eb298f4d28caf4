package harness

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover returns the scenario files under path. A file path is returned
// as is; a directory is walked for .yaml and .yml files in lexical order.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scenario path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var out []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml":
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover scenarios: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// SuiteResult summarises a scenario suite run.
type SuiteResult struct {
	Total     int               `json:"total"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
	Scenarios []ScenarioOutcome `json:"scenarios"`
}

// ScenarioOutcome is the result of one scenario file.
type ScenarioOutcome struct {
	Scenario string `json:"scenario,omitempty"`
	Path     string `json:"path"`
	Pass     bool   `json:"pass"`
	Error    string `json:"error,omitempty"`
}

// Failures returns the failed outcomes.
func (r *SuiteResult) Failures() []ScenarioOutcome {
	var out []ScenarioOutcome
	for _, o := range r.Scenarios {
		if !o.Pass {
			out = append(out, o)
		}
	}
	return out
}

// OK reports whether every scenario passed.
func (r *SuiteResult) OK() bool {
	return r.Failed == 0
}

func (r *SuiteResult) fail(name, path, msg string) {
	r.Failed++
	r.Scenarios = append(r.Scenarios, ScenarioOutcome{Scenario: name, Path: path, Error: msg})
}

// RunSuite loads and runs every scenario under path whose file name
// matches filter (a filepath.Match pattern; empty matches all). Load and
// execution failures are recorded per scenario; the error is non-nil only
// when discovery fails or ctx is cancelled.
func RunSuite(ctx context.Context, path, filter string, logger *slog.Logger) (*SuiteResult, error) {
	paths, err := Discover(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	result := &SuiteResult{Scenarios: []ScenarioOutcome{}}
	for _, p := range paths {
		if filter != "" {
			ok, err := filepath.Match(filter, strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)))
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
			}
			if !ok {
				continue
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Total++
		scenario, err := LoadScenario(p)
		if err != nil {
			result.fail("", p, fmt.Sprintf("failed to load scenario: %v", err))
			continue
		}
		run, err := RunContext(ctx, scenario, logger)
		if err != nil {
			result.fail(scenario.Name, p, fmt.Sprintf("scenario execution failed: %v", err))
			continue
		}
		if !run.Pass {
			result.fail(scenario.Name, p, fmt.Sprintf("scenario assertions failed: %v", strings.Join(run.Errors, "; ")))
			continue
		}
		result.Passed++
		result.Scenarios = append(result.Scenarios, ScenarioOutcome{Scenario: scenario.Name, Path: p, Pass: true})
	}
	logger.Info("scenario suite finished", "total", result.Total, "passed", result.Passed, "failed", result.Failed)
	return result, nil
}
