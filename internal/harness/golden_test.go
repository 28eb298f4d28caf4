package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_SampleReading(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/sample_reading.yaml")
	require.NoError(t, err)

	// Regenerate with:
	//   go test ./internal/harness -run TestRunWithGolden -update
	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithGolden_Couple(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/couple.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	// The repeated step hits the archived record.
	assert.Equal(t, result.Trace[0].RunID, result.Trace[1].RunID)
}

func TestSnapshot_Deterministic(t *testing.T) {
	trace := []TraceEvent{
		{Seq: 1, RunID: "run-000001", Op: OpTrend, Args: map[string]any{"start": 2024, "end": 2028}, Summary: "flat"},
		{Seq: 2, RunID: "run-000002", Op: OpPatterns, Summary: "none"},
	}
	a, err := Snapshot("s", trace)
	require.NoError(t, err)
	b, err := Snapshot("s", trace)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "# s\n"+
		`1 run-000001 trend {"end":2028,"start":2024} => flat`+"\n"+
		"2 run-000002 patterns {} => none\n", a)
}

func TestSnapshot_RejectsFloatArgs(t *testing.T) {
	_, err := Snapshot("s", []TraceEvent{{Seq: 1, Op: OpTiming, Args: map[string]any{"year": 2024.5}}})
	require.Error(t, err)
}
