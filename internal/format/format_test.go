package format_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/compat"
	"github.com/roach88/saju/internal/format"
	"github.com/roach88/saju/internal/pattern"
	"github.com/roach88/saju/internal/report"
	"github.com/roach88/saju/internal/store"
	"github.com/roach88/saju/internal/testutil"
	"github.com/roach88/saju/internal/timing"
	"github.com/roach88/saju/internal/trend"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Year", "Score")
	tb.Row(2024, 63)
	out := tb.String()

	assert.Contains(t, out, "Year")
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "───", "ASCII mode uses box-drawing characters")
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Year", "Score")
	tb.Row(2024, 63)
	tb.Footer("avg", 63)
	out := tb.String()

	assert.Contains(t, out, "| Year")
	assert.Contains(t, out, "---")
	assert.Contains(t, out, "avg")
}

func TestTiming(t *testing.T) {
	s := timing.Score(testutil.SampleProfile(), timing.Query{Year: 2024, Month: 3}, timing.Options{})
	out := format.Timing(s, format.ASCII)

	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "甲辰")
	assert.Contains(t, out, "seun")
	assert.Contains(t, out, "wolun")
	assert.Contains(t, out, string(s.Grade))
}

func TestTrend(t *testing.T) {
	tr := trend.Analyze(testutil.SampleProfile(), 2024, 2028, trend.Options{})
	out := format.Trend(tr, format.Markdown)

	for _, want := range []string{"2024", "2028", "丙午", "peaks:", "lows:", "summary: " + tr.Summary} {
		assert.Contains(t, out, want)
	}
}

func TestTrend_Empty(t *testing.T) {
	tr := trend.Analyze(testutil.SampleProfile(), 1900, 1950, trend.Options{})
	assert.Equal(t, "no years in range 1990-1950", format.Trend(tr, format.ASCII))
}

func TestPatterns(t *testing.T) {
	out := format.Patterns(pattern.DetectAll(testutil.SampleProfile()), format.ASCII)
	for _, k := range pattern.Kinds {
		assert.Contains(t, out, string(k))
	}
	assert.Contains(t, out, "✓")
}

func TestCompat(t *testing.T) {
	s := compat.Analyze(testutil.SampleProfile(), testutil.PartnerProfile())
	f := compat.Fuse(compat.FusionInput{Saju: s})
	out := format.Compat(s, f, format.ASCII)

	assert.Contains(t, out, f.Grade.Title)
	assert.Contains(t, out, "element harmony")
	for _, a := range f.Actions {
		assert.Contains(t, out, a.Tag)
	}
}

func TestReport(t *testing.T) {
	q := timing.Query{Year: 2024}
	r, err := report.Build(context.Background(), testutil.SampleProfile(), report.Options{Query: &q, StartYear: 2024, EndYear: 2026})
	require.NoError(t, err)

	out := format.Report(r, format.ASCII)
	assert.Contains(t, out, "day master 甲")
	assert.Contains(t, out, "yongsin")
	assert.Contains(t, out, "summary:")
	assert.Contains(t, out, "cheonsang")
}

func TestHistory(t *testing.T) {
	assert.Equal(t, "no archived reports", format.History(nil, format.ASCII))

	out := format.History([]store.Record{{Seq: 1, ID: "run-000001", Kind: store.KindTrend, ProfileID: strings.Repeat("a", 64), Fingerprint: strings.Repeat("b", 64)}}, format.ASCII)
	assert.Contains(t, out, "run-000001")
	assert.Contains(t, out, strings.Repeat("a", 12))
	assert.NotContains(t, out, strings.Repeat("a", 13))
}
