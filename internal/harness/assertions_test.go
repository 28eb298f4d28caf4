package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/store"
	"github.com/roach88/saju/internal/testutil"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Op: OpTiming, Args: map[string]any{"year": 2024}},
		{Seq: 2, Op: OpTrend, Args: map[string]any{"start": 2024, "end": 2028}},
		{Seq: 3, Op: OpTiming, Args: map[string]any{"year": 2025}},
	}
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()
	assert.NoError(t, assertTraceContains(trace, Assertion{Op: OpTiming}))
	assert.NoError(t, assertTraceContains(trace, Assertion{Op: OpTiming, Args: map[string]any{"year": 2025}}))
	assert.NoError(t, assertTraceContains(trace, Assertion{Op: OpTrend, Args: map[string]any{"end": 2028}}))

	err := assertTraceContains(trace, Assertion{Op: OpTiming, Args: map[string]any{"year": 2030}})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceContains, ae.Type)
	assert.Contains(t, err.Error(), "Full trace:")
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()
	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{OpTiming, OpTrend}}))

	err := assertTraceOrder(trace, Assertion{Ops: []string{OpTrend, OpTiming}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "should be before")

	err = assertTraceOrder(trace, Assertion{Ops: []string{OpTiming, OpCompat}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing op: compat")
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpTiming, Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpCompat, Count: 0}))
	assert.Error(t, assertTraceCount(trace, Assertion{Op: OpTrend, Count: 2}))
}

func TestAssertFinalState(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequenceIDGenerator("run")))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	p := testutil.SampleProfile()
	_, err = st.SaveReport(ctx, p, store.KindTiming, map[string]any{"year": 2024}, map[string]any{"score": 63})
	require.NoError(t, err)
	_, err = st.SaveReport(ctx, p, store.KindTiming, map[string]any{"year": 2025}, map[string]any{"score": 40})
	require.NoError(t, err)
	_, err = st.SaveReport(ctx, p, store.KindTrend, map[string]any{}, map[string]any{"average": 34})
	require.NoError(t, err)

	t.Run("match", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "reports",
			Where:  map[string]any{"kind": "trend"},
			Expect: map[string]any{"seq": 3, "id": "run-000003"},
		})
		assert.NoError(t, err)
	})
	t.Run("profiles table", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "profiles",
			Where:  map[string]any{"day_pillar": "甲子"},
			Expect: map[string]any{"birth_year": 1990, "name": "sample"},
		})
		assert.NoError(t, err)
	})
	t.Run("ambiguous", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "reports",
			Where:  map[string]any{"kind": "timing"},
			Expect: map[string]any{"seq": 1},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple rows matched")
	})
	t.Run("not found", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "reports",
			Where:  map[string]any{"kind": "compat"},
			Expect: map[string]any{"seq": 1},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row not found")
	})
	t.Run("value mismatch", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "reports",
			Where:  map[string]any{"kind": "trend"},
			Expect: map[string]any{"seq": 9},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `field "seq"`)
	})
	t.Run("unknown column", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{
			Table:  "reports",
			Where:  map[string]any{"kind": "trend"},
			Expect: map[string]any{"colour": "red"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not present")
	})
	t.Run("rejects injected identifiers", func(t *testing.T) {
		err := assertFinalState(ctx, st, Assertion{Table: "reports; DROP TABLE reports", Expect: map[string]any{"seq": 1}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid table name")

		err = assertFinalState(ctx, st, Assertion{Table: "reports", Where: map[string]any{"kind OR 1=1": "x"}, Expect: map[string]any{"seq": 1}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid column name")
	})
}

func TestBuildWhereClause_SortedKeys(t *testing.T) {
	sql, args, err := buildWhereClause(map[string]any{"kind": "trend", "id": "run-000001"})
	require.NoError(t, err)
	assert.Equal(t, "id = ? AND kind = ?", sql)
	assert.Equal(t, []any{"run-000001", "trend"}, args)
}

func TestMatchExpect(t *testing.T) {
	result := map[string]any{
		"score":  63,
		"grade":  "B",
		"layers": []map[string]any{{"layer": "year", "score": 60}},
	}
	assert.NoError(t, matchExpect(map[string]any{"grade": "B"}, result))
	assert.NoError(t, matchExpect(map[string]any{"layers": []any{map[string]any{"layer": "year"}}}, result))

	err := matchExpect(map[string]any{"layers": []any{}}, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 0 items, got 1")

	err = matchExpect(map[string]any{"missing": 1}, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing: missing field")

	err = matchExpect(map[string]any{"score": 64}, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score: expected 64, got 63")
}
