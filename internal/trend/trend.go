// Package trend runs the layered timing scorer across a range of years and
// derives peaks, lows, the overall trend shape, decade transitions and
// life-phase segments.
package trend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/timing"
)

// MaxSpan caps the number of years analysed in one call.
const MaxSpan = 200

// Thresholds for trend classification.
const (
	DirectionThreshold  = 5  // late-minus-early average, in points
	VolatilityThreshold = 15 // standard deviation, in points
	ExtremeCount        = 3  // peaks and lows reported
)

// Direction is the overall shape of a trend.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
	Stable     Direction = "stable"
	Volatile   Direction = "volatile"
)

// Options configures an analysis.
type Options struct {
	Timing timing.Options
	// MaxSpan overrides the package cap when positive and smaller.
	MaxSpan int
	// Month, when set, scores each year at that month.
	Month int
}

// Extreme is a peak or low year.
type Extreme struct {
	Year  int          `json:"year"`
	Score int          `json:"score"`
	Grade timing.Grade `json:"grade"`
}

// MultiYearTrend is the analysis of one year range.
type MultiYearTrend struct {
	StartYear   int                   `json:"start_year"`
	EndYear     int                   `json:"end_year"`
	Scores      []timing.LayeredScore `json:"scores"`
	PeakYears   []Extreme             `json:"peak_years"`
	LowYears    []Extreme             `json:"low_years"`
	Trend       Direction             `json:"trend"`
	Average     int                   `json:"average"`
	StdDev      int                   `json:"std_dev"`
	Transitions []Transition          `json:"transitions"`
	Phases      []Phase               `json:"phases"`
	Summary     string                `json:"summary"`
}

// Empty reports whether the range produced no years.
func (t MultiYearTrend) Empty() bool {
	return len(t.Scores) == 0
}

// Bounds clamps a requested range: start never precedes the birth year and
// the span never exceeds the cap. ok is false for an empty range.
func Bounds(p chart.BirthProfile, start, end, maxSpan int) (int, int, bool) {
	if maxSpan <= 0 || maxSpan > MaxSpan {
		maxSpan = MaxSpan
	}
	if start < p.BirthYear {
		start = p.BirthYear
	}
	if end < start {
		return start, end, false
	}
	if end-start+1 > maxSpan {
		end = start + maxSpan - 1
	}
	return start, end, true
}

// Analyze scores every year of [start, end] sequentially.
func Analyze(p chart.BirthProfile, start, end int, opts Options) MultiYearTrend {
	start, end, ok := Bounds(p, start, end, opts.MaxSpan)
	if !ok {
		return empty(start, end)
	}
	scores := make([]timing.LayeredScore, 0, end-start+1)
	for year := start; year <= end; year++ {
		scores = append(scores, timing.Score(p, query(year, opts), opts.Timing))
	}
	return derive(p, start, end, scores, opts)
}

// AnalyzeParallel is Analyze with the per-year scoring spread over at most
// workers goroutines. The result is identical to Analyze.
func AnalyzeParallel(ctx context.Context, p chart.BirthProfile, start, end, workers int, opts Options) (MultiYearTrend, error) {
	start, end, ok := Bounds(p, start, end, opts.MaxSpan)
	if !ok {
		return empty(start, end), nil
	}
	if workers <= 0 {
		workers = 1
	}
	scores := make([]timing.LayeredScore, end-start+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range scores {
		i := i
		year := start + i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores[i] = timing.Score(p, query(year, opts), opts.Timing)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MultiYearTrend{}, fmt.Errorf("scoring years %d-%d: %w", start, end, err)
	}
	return derive(p, start, end, scores, opts), nil
}

func query(year int, opts Options) timing.Query {
	return timing.Query{Year: year, Month: opts.Month}
}

func empty(start, end int) MultiYearTrend {
	return MultiYearTrend{
		StartYear:   start,
		EndYear:     end,
		Scores:      []timing.LayeredScore{},
		PeakYears:   []Extreme{},
		LowYears:    []Extreme{},
		Trend:       Stable,
		Transitions: []Transition{},
		Phases:      []Phase{},
		Summary:     "no-data",
	}
}

func derive(p chart.BirthProfile, start, end int, scores []timing.LayeredScore, opts Options) MultiYearTrend {
	t := MultiYearTrend{
		StartYear: start,
		EndYear:   end,
		Scores:    scores,
	}
	t.PeakYears, t.LowYears = Extremes(scores, ExtremeCount)
	t.Trend, t.Average, t.StdDev = Classify(weighted(scores))
	t.Transitions = Transitions(p, start, end, opts.Timing)
	t.Phases = Phases(p, scores, opts.Timing)
	t.Summary = summarize(t)
	return t
}

func weighted(scores []timing.LayeredScore) []int {
	out := make([]int, len(scores))
	for i, s := range scores {
		out[i] = s.WeightedScore
	}
	return out
}

// Extremes returns up to n peak and n low years. Ties go to the earlier
// year, so a peak score is never below a non-peak score.
func Extremes(scores []timing.LayeredScore, n int) (peaks, lows []Extreme) {
	all := make([]Extreme, len(scores))
	for i, s := range scores {
		all[i] = Extreme{Year: s.Year, Score: s.WeightedScore, Grade: s.Grade}
	}
	if n > len(all) {
		n = len(all)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Year < all[j].Year
	})
	peaks = append([]Extreme{}, all[:n]...)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score < all[j].Score
		}
		return all[i].Year < all[j].Year
	})
	lows = append([]Extreme{}, all[:n]...)
	return peaks, lows
}

// Classify compares the average of the first and last thirds of the
// series. A clear move either way is a direction; otherwise a spread above
// the volatility threshold is volatile and anything else is stable.
func Classify(values []int) (Direction, int, int) {
	n := len(values)
	if n == 0 {
		return Stable, 0, 0
	}
	avg := average(values)
	sd := stddev(values)
	third := n / 3
	if third == 0 {
		third = 1
	}
	early := average(values[:third])
	late := average(values[n-third:])
	diff := late - early
	switch {
	case diff >= DirectionThreshold:
		return Ascending, avg, sd
	case diff <= -DirectionThreshold:
		return Descending, avg, sd
	case sd > VolatilityThreshold:
		return Volatile, avg, sd
	default:
		return Stable, avg, sd
	}
}

func average(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return (sum + len(values)/2) / len(values)
}

// stddev is the integer population standard deviation.
func stddev(values []int) int {
	n := len(values)
	if n < 2 {
		return 0
	}
	sum, sumSq := 0, 0
	for _, v := range values {
		sum += v
		sumSq += v * v
	}
	variance := (n*sumSq - sum*sum) / (n * n)
	return isqrt(variance)
}

func isqrt(v int) int {
	if v <= 0 {
		return 0
	}
	r := v
	for {
		next := (r + v/r) / 2
		if next >= r {
			return r
		}
		r = next
	}
}

func summarize(t MultiYearTrend) string {
	parts := []string{string(t.Trend), fmt.Sprintf("avg-%d", t.Average)}
	if len(t.PeakYears) > 0 {
		parts = append(parts, fmt.Sprintf("peak-%d", t.PeakYears[0].Year))
	}
	if len(t.LowYears) > 0 {
		parts = append(parts, fmt.Sprintf("low-%d", t.LowYears[0].Year))
	}
	if len(t.Transitions) > 0 {
		parts = append(parts, fmt.Sprintf("transitions-%d", len(t.Transitions)))
	}
	return strings.Join(parts, "/")
}
