package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NilScenario(t *testing.T) {
	_, err := Run(nil)
	require.Error(t, err)
}

func TestRun_SampleReading(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/sample_reading.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 4)

	for i, ev := range result.Trace {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
	assert.Equal(t, "run-000002", result.Trace[1].RunID)
	assert.Equal(t, "63 B conf 50", result.Trace[1].Summary)
}

func TestRun_ExpectMismatchFails(t *testing.T) {
	path := writeScenario(t, `
name: wrong_grade
description: "expects the wrong grade"
profile: {file: profiles.cue}
steps:
  - op: timing
    args: {year: 2024}
    expect: {grade: A}
`)
	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "grade: expected A, got B")
}

func TestRun_StepErrorAbortsRun(t *testing.T) {
	path := writeScenario(t, `
name: bad_month
description: "month out of range"
profile: {file: profiles.cue}
steps:
  - op: timing
    args: {year: 2024, month: 13}
`)
	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	_, err = Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month 13 out of range")
}

func TestRun_TimingRejectsImpossibleDate(t *testing.T) {
	path := writeScenario(t, `
name: bad_day
description: "february 30"
profile: {file: profiles.cue}
steps:
  - op: timing
    args: {year: 2023, month: 2, day: 30}
`)
	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	_, err = Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day 30 out of range 1..28")
}

func TestRun_TimingNeedsYear(t *testing.T) {
	path := writeScenario(t, `
name: no_year
description: "timing without a year"
profile: {file: profiles.cue}
steps:
  - op: timing
`)
	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	_, err = Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year is required")
}

func TestRun_EmptyTrend(t *testing.T) {
	path := writeScenario(t, `
name: reversed
description: "end before start"
profile: {file: profiles.cue}
steps:
  - op: trend
    args: {start: 2030, end: 2020}
    expect: {summary: no-data}
`)
	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "empty", result.Trace[0].Summary)
}

func TestRun_CompatWithOptionalInputs(t *testing.T) {
	scenario := &Scenario{
		Name:        "fused",
		Description: "graph and astro inputs",
		Profile:     ProfileRef{File: "testdata/scenarios/profiles.cue", Name: "alice"},
		Partner:     &ProfileRef{File: "testdata/scenarios/profiles.cue", Name: "bora"},
		Steps: []Step{{
			Op: OpCompat,
			Args: map[string]any{
				"graph": map[string]any{"harmony_index": 80, "cluster_score": 70, "critical_nodes": []any{"mother"}},
				"astro": map[string]any{"synastry": 65},
			},
		}},
	}
	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Trace, 1)

	out, ok := result.Trace[0].Result.(CompatResult)
	require.True(t, ok)
	assert.Contains(t, tagsOf(out), "nurture-critical-connections")
	assert.Contains(t, tagsOf(out), "plan-around-harmonious-transits")
}

func TestRun_CompatRejectsMalformedGraph(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_graph",
		Description: "graph is not an object",
		Profile:     ProfileRef{File: "testdata/scenarios/profiles.cue", Name: "alice"},
		Partner:     &ProfileRef{File: "testdata/scenarios/profiles.cue", Name: "bora"},
		Steps:       []Step{{Op: OpCompat, Args: map[string]any{"graph": "dense"}}},
	}
	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph")
}

func TestIntArg(t *testing.T) {
	n, err := intArg(map[string]any{"y": 2024}, "y", 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, n)

	n, err = intArg(map[string]any{"y": float64(7)}, "y", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = intArg(nil, "y", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = intArg(map[string]any{"y": 1.5}, "y", 0)
	assert.Error(t, err)

	_, err = intArg(map[string]any{"y": "2024"}, "y", 0)
	assert.Error(t, err)
}

func tagsOf(r CompatResult) []string {
	var out []string
	for _, a := range r.Fusion.Actions {
		out = append(out, a.Tag)
	}
	return out
}
