package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/compiler"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Profile is the chart under test.
	Profile ProfileRef `yaml:"profile"`

	// Partner is the second chart for compat steps.
	Partner *ProfileRef `yaml:"partner,omitempty"`

	// Steps are executed in order; each archives one report.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and archive.
	Assertions []Assertion `yaml:"assertions"`

	// RunIDPrefix prefixes the deterministic run IDs. Defaults to "run".
	RunIDPrefix string `yaml:"run_id_prefix,omitempty"`
}

// ProfileRef points at a profile in a CUE file or carries one inline.
type ProfileRef struct {
	// File is a CUE file, relative to the scenario file.
	File string `yaml:"file,omitempty"`
	// Name selects a profile within File.
	Name string `yaml:"name,omitempty"`
	// Inline is a profile in the #Profile schema shape.
	Inline map[string]any `yaml:"inline,omitempty"`
}

// Resolve compiles the referenced profile.
func (r ProfileRef) Resolve() (chart.BirthProfile, error) {
	switch {
	case r.Inline != nil:
		p, err := compiler.CompileData(r.Inline)
		if err != nil {
			return chart.BirthProfile{}, err
		}
		return *p, nil
	case r.File != "":
		return compiler.LoadNamed(r.File, r.Name)
	default:
		return chart.BirthProfile{}, fmt.Errorf("profile needs file or inline")
	}
}

// Step is one engine operation.
type Step struct {
	// Op is one of Ops.
	Op string `yaml:"op"`

	// Args are the op's arguments.
	Args map[string]any `yaml:"args,omitempty"`

	// Expect is matched against the op's JSON result. Subset semantics:
	// only the given fields, recursively, are compared.
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Operation names.
const (
	OpChart    = "chart"
	OpYongsin  = "yongsin"
	OpTiming   = "timing"
	OpTrend    = "trend"
	OpPatterns = "patterns"
	OpCompat   = "compat"
)

// Ops lists the supported operations.
var Ops = []string{OpChart, OpYongsin, OpTiming, OpTrend, OpPatterns, OpCompat}

// Assertion validates trace or final state.
type Assertion struct {
	// Type is one of trace_contains, trace_order, trace_count, final_state.
	Type string `yaml:"type"`

	// Op is used by trace_contains and trace_count.
	Op string `yaml:"op,omitempty"`

	// Args are matched with subset semantics by trace_contains.
	Args map[string]any `yaml:"args,omitempty"`

	// Ops is the expected order for trace_order.
	Ops []string `yaml:"ops,omitempty"`

	// Count is the expected number of occurrences for trace_count.
	Count int `yaml:"count,omitempty"`

	// Table, Where and Expect drive final_state.
	Table  string         `yaml:"table,omitempty"`
	Where  map[string]any `yaml:"where,omitempty"`
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and parses a scenario YAML file. Profile file paths
// are resolved relative to the scenario's directory. Unknown fields and
// missing required fields are errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data, filepath.Dir(path))
}

// ParseScenario parses scenario YAML, resolving profile paths against
// baseDir.
func ParseScenario(data []byte, baseDir string) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches typos like "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	resolve := func(r *ProfileRef) {
		if r != nil && r.File != "" && !filepath.IsAbs(r.File) && baseDir != "" {
			r.File = filepath.Join(baseDir, r.File)
		}
	}
	resolve(&scenario.Profile)
	resolve(scenario.Partner)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if err := validateRef("profile", &s.Profile); err != nil {
		return err
	}
	if s.Partner != nil {
		if err := validateRef("partner", s.Partner); err != nil {
			return err
		}
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if !slices.Contains(Ops, step.Op) {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Op == OpCompat && s.Partner == nil {
			return fmt.Errorf("steps[%d]: compat requires a partner", i)
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}
	return nil
}

func validateRef(field string, r *ProfileRef) error {
	if r.File == "" && r.Inline == nil {
		return fmt.Errorf("%s: file or inline is required", field)
	}
	if r.File != "" && r.Inline != nil {
		return fmt.Errorf("%s: file and inline are mutually exclusive", field)
	}
	if r.File != "" {
		if _, err := os.Stat(r.File); os.IsNotExist(err) {
			return fmt.Errorf("%s: profile file not found: %s", field, r.File)
		}
	}
	return nil
}

func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
