package trend

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/stage"
	"github.com/roach88/saju/internal/timing"
)

func sample() chart.BirthProfile {
	return chart.BirthProfile{
		BirthYear: 1990,
		Gender:    chart.Male,
		Year:      ganji.MustParsePillar("庚午"),
		Month:     ganji.MustParsePillar("戊寅"),
		Day:       ganji.MustParsePillar("甲子"),
		Hour:      ganji.MustParsePillar("丙寅"),
	}
}

func withDaeun() chart.BirthProfile {
	p := sample()
	return p.WithDaeun(chart.BuildDaeun(p, 3, 10))
}

func render(t MultiYearTrend) []byte {
	var b strings.Builder
	for _, s := range t.Scores {
		la, _ := s.Layer(timing.Year)
		fmt.Fprintf(&b, "%d %s %d %s\n", s.Year, la.Pillar, s.WeightedScore, s.Grade)
	}
	fmt.Fprintf(&b, "trend %s avg %d sd %d\n", t.Trend, t.Average, t.StdDev)
	b.WriteString("peaks")
	for _, e := range t.PeakYears {
		fmt.Fprintf(&b, " %d:%d", e.Year, e.Score)
	}
	b.WriteString("\nlows")
	for _, e := range t.LowYears {
		fmt.Fprintf(&b, " %d:%d", e.Year, e.Score)
	}
	b.WriteString("\n")
	for _, ph := range t.Phases {
		fmt.Fprintf(&b, "phase %d-%d %s %s %s\n", ph.StartYear, ph.EndYear, ph.Energy, ph.Element,
			strings.Join(ph.Recommendations, ","))
	}
	fmt.Fprintf(&b, "summary %s\n", t.Summary)
	return []byte(b.String())
}

func TestAnalyzeGolden(t *testing.T) {
	tr := Analyze(sample(), 2024, 2028, Options{})

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "sample_2024_2028", render(tr))
}

func TestYearsNeverPrecedeBirth(t *testing.T) {
	p := sample()
	tr := Analyze(p, 1980, 1995, Options{})
	require.Len(t, tr.Scores, 6)
	assert.Equal(t, 1990, tr.StartYear)
	for _, s := range tr.Scores {
		assert.GreaterOrEqual(t, s.Year, p.BirthYear)
		assert.Equal(t, s.Year-p.BirthYear, s.Age)
	}
}

func TestDegenerateRangesAreEmpty(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"reversed", 2030, 2020},
		{"before birth", 1900, 1950},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Analyze(sample(), tt.start, tt.end, Options{})
			assert.True(t, tr.Empty())
			assert.NotNil(t, tr.Scores)
			assert.Empty(t, tr.PeakYears)
			assert.Equal(t, "no-data", tr.Summary)
		})
	}
}

func TestSpanIsCapped(t *testing.T) {
	tr := Analyze(sample(), 1990, 2500, Options{})
	assert.Len(t, tr.Scores, MaxSpan)
	assert.Equal(t, 1990+MaxSpan-1, tr.EndYear)

	small := Analyze(sample(), 1990, 2500, Options{MaxSpan: 10})
	assert.Len(t, small.Scores, 10)
}

func TestPeaksDominateNonPeaks(t *testing.T) {
	p := withDaeun().WithElements([]ganji.Element{ganji.Water}, []ganji.Element{ganji.Metal})
	tr := Analyze(p, 1990, 2080, Options{})

	require.Len(t, tr.PeakYears, ExtremeCount)
	require.Len(t, tr.LowYears, ExtremeCount)

	peak := map[int]bool{}
	minPeak := 101
	for _, e := range tr.PeakYears {
		peak[e.Year] = true
		minPeak = min(minPeak, e.Score)
	}
	for _, s := range tr.Scores {
		if !peak[s.Year] {
			assert.LessOrEqual(t, s.WeightedScore, minPeak, "year %d", s.Year)
		}
	}
}

func TestExtremesTieBreakEarlierYear(t *testing.T) {
	scores := []timing.LayeredScore{
		{Year: 2000, WeightedScore: 50},
		{Year: 2001, WeightedScore: 70},
		{Year: 2002, WeightedScore: 70},
		{Year: 2003, WeightedScore: 70},
		{Year: 2004, WeightedScore: 70},
	}
	peaks, lows := Extremes(scores, 3)
	assert.Equal(t, []int{2001, 2002, 2003}, years(peaks))
	assert.Equal(t, []int{2000, 2001, 2002}, years(lows))

	peaks, _ = Extremes(scores[:2], 3)
	assert.Len(t, peaks, 2)
}

func years(es []Extreme) []int {
	out := make([]int, len(es))
	for i, e := range es {
		out[i] = e.Year
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   Direction
	}{
		{"ascending", []int{40, 45, 50, 55, 60, 65}, Ascending},
		{"descending", []int{70, 65, 60, 50, 45, 40}, Descending},
		{"stable", []int{50, 52, 49, 51, 50, 52}, Stable},
		{"volatile", []int{20, 90, 15, 85, 25, 80, 10, 95, 20}, Volatile},
		{"single", []int{50}, Stable},
		{"empty", nil, Stable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _ := Classify(tt.values)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionsAndPhases(t *testing.T) {
	p := withDaeun()
	tr := Analyze(p, 2000, 2030, Options{})

	require.Len(t, tr.Transitions, 3)
	first := tr.Transitions[0]
	assert.Equal(t, 2003, first.Year)
	assert.Equal(t, 13, first.Age)
	assert.Equal(t, "己卯", first.From.String())
	assert.Equal(t, "庚辰", first.To.String())
	assert.Equal(t, stage.Declining, first.Energy)
	assert.Equal(t, Challenging, first.Impact)

	require.Len(t, tr.Phases, 4)
	assert.Equal(t, 2000, tr.Phases[0].StartYear)
	assert.Equal(t, 2002, tr.Phases[0].EndYear)
	require.NotNil(t, tr.Phases[0].Daeun)
	assert.Equal(t, "己卯", tr.Phases[0].Daeun.String())
	assert.Equal(t, 2023, tr.Phases[3].StartYear)
	assert.Equal(t, 2030, tr.Phases[3].EndYear)
	for _, ph := range tr.Phases {
		assert.NotEmpty(t, ph.Recommendations)
	}
	assert.Contains(t, tr.Summary, "transitions-3")
}

func TestImpactLevels(t *testing.T) {
	fav := []ganji.Element{ganji.Water}
	unfav := []ganji.Element{ganji.Metal}

	// 壬子 for 甲: 목욕 rising (+1), water stem (+2) and branch (+1).
	impact, points := ImpactOf(ganji.Gap, ganji.MustParsePillar("壬子"), fav, unfav)
	assert.Equal(t, MajorPositive, impact)
	assert.Equal(t, 4, points)

	// 庚申 for 甲: 절 dormant (-2), metal stem (-2) and branch (-1).
	impact, points = ImpactOf(ganji.Gap, ganji.MustParsePillar("庚申"), fav, unfav)
	assert.Equal(t, MajorChallenging, impact)
	assert.Equal(t, -5, points)
}

func TestParallelMatchesSequential(t *testing.T) {
	p := withDaeun().WithElements([]ganji.Element{ganji.Fire}, nil)
	want := Analyze(p, 1990, 2060, Options{Month: 5})
	got, err := AnalyzeParallel(context.Background(), p, 1990, 2060, 4, Options{Month: 5})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParallelHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AnalyzeParallel(ctx, sample(), 1990, 2050, 2, Options{})
	require.Error(t, err)
}

func TestTrendScoresRescoreIdentically(t *testing.T) {
	p := withDaeun().WithElements([]ganji.Element{ganji.Earth}, []ganji.Element{ganji.Wood})
	opts := Options{Month: 9}
	tr := Analyze(p, 1995, 2045, opts)
	for _, s := range tr.Scores {
		again := timing.ScoreLayers(p, s.Query(), s.Inputs(), opts.Timing)
		require.Equal(t, s, again, "year %d", s.Year)
	}
}
