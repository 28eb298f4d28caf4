package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/compat"
	"github.com/roach88/saju/internal/pattern"
	"github.com/roach88/saju/internal/report"
	"github.com/roach88/saju/internal/store"
	"github.com/roach88/saju/internal/testutil"
	"github.com/roach88/saju/internal/timing"
	"github.com/roach88/saju/internal/trend"
	"github.com/roach88/saju/internal/yongsin"
)

// Run executes a scenario against a fresh in-memory archive and returns
// the trace plus any expect or assertion failures. The error is non-nil
// only when the scenario could not be executed at all.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, slog.Default())
}

// RunContext is Run with an explicit context and logger.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	p, err := scenario.Profile.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve profile: %w", err)
	}
	var partner *chart.BirthProfile
	if scenario.Partner != nil {
		q, err := scenario.Partner.Resolve()
		if err != nil {
			return nil, fmt.Errorf("resolve partner: %w", err)
		}
		partner = &q
	}

	prefix := scenario.RunIDPrefix
	if prefix == "" {
		prefix = "run"
	}
	st, err := store.Open(":memory:",
		store.WithIDGenerator(testutil.NewSequenceIDGenerator(prefix)),
		store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	result := NewResult()
	for i, step := range scenario.Steps {
		kind, out, summary, err := execute(ctx, p, partner, step, logger)
		if err != nil {
			return nil, fmt.Errorf("steps[%d] %s: %w", i, step.Op, err)
		}
		params := step.Args
		if params == nil {
			params = map[string]any{}
		}
		rec, err := st.SaveReport(ctx, p, kind, params, out)
		if err != nil {
			return nil, fmt.Errorf("steps[%d] %s: archive: %w", i, step.Op, err)
		}
		result.AddTrace(TraceEvent{
			Seq:     rec.Seq,
			RunID:   rec.ID,
			Op:      step.Op,
			Args:    step.Args,
			Result:  out,
			Summary: summary,
		})
		if len(step.Expect) > 0 {
			if err := matchExpect(step.Expect, out); err != nil {
				result.AddError(fmt.Sprintf("steps[%d] %s: %v", i, step.Op, err))
			}
		}
	}

	for i, a := range scenario.Assertions {
		if err := evaluateAssertion(ctx, st, result.Trace, a); err != nil {
			result.AddError(fmt.Sprintf("assertion %d (%s) failed: %v", i, a.Type, err))
		}
	}
	logger.Debug("scenario finished", "name", scenario.Name, "steps", len(result.Trace), "pass", result.Pass)
	return result, nil
}

// CompatResult is the archived output of a compat step.
type CompatResult struct {
	Saju   compat.SajuScore    `json:"saju"`
	Fusion compat.FusionResult `json:"fusion"`
}

// execute runs one op and returns its archive kind, result and summary.
func execute(ctx context.Context, p chart.BirthProfile, partner *chart.BirthProfile, step Step, logger *slog.Logger) (string, any, string, error) {
	args := step.Args
	switch step.Op {
	case OpChart:
		r, err := report.Build(ctx, p, report.Options{Logger: logger})
		if err != nil {
			return "", nil, "", err
		}
		return store.KindChart, r, fmt.Sprintf("%s %s %s", r.DayMaster, r.Yongsin.Primary, r.Yongsin.Strength), nil

	case OpYongsin:
		r := yongsin.Determine(p)
		return store.KindChart, r, fmt.Sprintf("%s %s %s", r.Type, r.Primary, r.Strength), nil

	case OpTiming:
		year, err := intArg(args, "year", 0)
		if err != nil {
			return "", nil, "", err
		}
		if year == 0 {
			return "", nil, "", fmt.Errorf("year is required")
		}
		month, err := intArg(args, "month", 0)
		if err != nil {
			return "", nil, "", err
		}
		day, err := intArg(args, "day", 0)
		if err != nil {
			return "", nil, "", err
		}
		q := timing.Query{Year: year, Month: month, Day: day}
		if err := q.Validate(); err != nil {
			return "", nil, "", err
		}
		s := timing.Score(p, q, timing.Options{})
		return store.KindTiming, s, fmt.Sprintf("%d %s conf %d", s.WeightedScore, s.Grade, s.Confidence), nil

	case OpTrend:
		start, err := intArg(args, "start", 0)
		if err != nil {
			return "", nil, "", err
		}
		end, err := intArg(args, "end", 0)
		if err != nil {
			return "", nil, "", err
		}
		month, err := intArg(args, "month", 0)
		if err != nil {
			return "", nil, "", err
		}
		t := trend.Analyze(p, start, end, trend.Options{Month: month})
		if t.Empty() {
			return store.KindTrend, t, "empty", nil
		}
		return store.KindTrend, t, fmt.Sprintf("%s avg %d sd %d", t.Trend, t.Average, t.StdDev), nil

	case OpPatterns:
		results := pattern.DetectAll(p)
		return store.KindPatterns, results, detectedSummary(results), nil

	case OpCompat:
		if partner == nil {
			return "", nil, "", fmt.Errorf("compat requires a partner")
		}
		in := compat.FusionInput{Saju: compat.Analyze(p, *partner)}
		if err := decodeArg(args, "graph", &in.Graph); err != nil {
			return "", nil, "", err
		}
		if err := decodeArg(args, "astro", &in.Astro); err != nil {
			return "", nil, "", err
		}
		out := CompatResult{Saju: in.Saju, Fusion: compat.Fuse(in)}
		return store.KindCompat, out, fmt.Sprintf("%d %s", out.Fusion.Overall, out.Fusion.Grade.Grade), nil
	}
	return "", nil, "", fmt.Errorf("unknown op %q", step.Op)
}

func detectedSummary(results []pattern.Result) string {
	s := ""
	for _, r := range results {
		if !r.Detected {
			continue
		}
		if s != "" {
			s += " "
		}
		s += string(r.Kind)
		if r.Type != "" {
			s += ":" + r.Type
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// intArg reads an integer argument. YAML integers decode as int; JSON
// round-trips may produce float64 with no fractional part.
func intArg(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%s must be an integer, got %v", key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
}

// decodeArg re-encodes an argument into a typed destination.
func decodeArg(args map[string]any, key string, dst any) error {
	v, ok := args[key]
	if !ok || v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
