package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/saju/internal/canon"
)

// Snapshot renders a trace as one line per step:
//
//	<seq> <run id> <op> <canonical args> => <summary>
//
// Full results are archived in the store; the snapshot pins the headline
// numbers so golden diffs stay readable.
func Snapshot(name string, trace []TraceEvent) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", name)
	for _, ev := range trace {
		args := "{}"
		if len(ev.Args) > 0 {
			data, err := canon.Marshal(ev.Args)
			if err != nil {
				return "", fmt.Errorf("seq %d: %w", ev.Seq, err)
			}
			args = string(data)
		}
		fmt.Fprintf(&b, "%d %s %s %s => %s\n", ev.Seq, ev.RunID, ev.Op, args, ev.Summary)
	}
	return b.String(), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()
	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()
	snap, err := Snapshot(name, result.Trace)
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(snap))
	return nil
}
