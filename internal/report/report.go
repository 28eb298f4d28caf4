// Package report assembles a full reading of one birth profile: favorable
// elements, natal roles and stages, secondary patterns, an optional
// timing query and an optional multi-year trend.
//
// The engine packages are pure; this is the layer that validates input,
// logs and fans the independent analyses out over an errgroup.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/saju/internal/canon"
	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/pattern"
	"github.com/roach88/saju/internal/sibsin"
	"github.com/roach88/saju/internal/stage"
	"github.com/roach88/saju/internal/timing"
	"github.com/roach88/saju/internal/trend"
	"github.com/roach88/saju/internal/yongsin"
)

// Options selects the optional sections of a report.
type Options struct {
	// Query, when set, adds a layered timing score.
	Query *timing.Query
	// StartYear and EndYear, when EndYear is non-zero, add a trend.
	StartYear int
	EndYear   int
	// MaxSpan caps the trend span; zero uses trend.MaxSpan.
	MaxSpan int
	// Workers bounds trend parallelism; zero or less scores sequentially.
	Workers int
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NatalPillar is the reading of one natal pillar against the day master.
type NatalPillar struct {
	Position   chart.Position `json:"position"`
	Pillar     ganji.Pillar   `json:"pillar"`
	StemRole   sibsin.Role    `json:"stem_role,omitempty"`
	BranchRole sibsin.Role    `json:"branch_role"`
	Stage      stage.Stage    `json:"stage"`
	Energy     stage.Energy   `json:"energy"`
	StageScore int            `json:"stage_score"`
}

// Report is the assembled reading.
type Report struct {
	ProfileID   string                `json:"profile_id"`
	Profile     chart.BirthProfile    `json:"profile"`
	DayMaster   ganji.Stem            `json:"day_master"`
	Tally       chart.ElementTally    `json:"tally"`
	Missing     []ganji.Element       `json:"missing"`
	Yongsin     yongsin.Result        `json:"yongsin"`
	Natal       []NatalPillar         `json:"natal"`
	Groups      map[sibsin.Group]int  `json:"groups"`
	Patterns    []pattern.Result      `json:"patterns"`
	Timing      *timing.LayeredScore  `json:"timing,omitempty"`
	Trend       *trend.MultiYearTrend `json:"trend,omitempty"`
}

// Build validates p and assembles its report. Favorable and unfavorable
// elements already on the profile are kept; otherwise the yongsin
// decision is applied before timing and trend are scored.
func Build(ctx context.Context, p chart.BirthProfile, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	if opts.Query != nil && opts.Query.Month != 0 && (opts.Query.Month < 1 || opts.Query.Month > 12) {
		return nil, fmt.Errorf("build report: month %d out of range 1..12", opts.Query.Month)
	}

	id, err := canon.Fingerprint(canon.DomainProfile, p)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	logger = logger.With("profile", id[:12])

	decision := yongsin.Determine(p)
	scored := p
	if len(p.Favorable) == 0 && len(p.Unfavorable) == 0 {
		scored = decision.Apply(p)
		logger.Debug("applied favorable elements",
			"type", decision.Type, "primary", decision.Primary, "strength", decision.Strength)
	}

	tally := p.Tally()
	r := &Report{
		ProfileID: id,
		Profile:   p.Clone(),
		DayMaster: p.DayMaster(),
		Tally:     tally,
		Missing:   tally.Missing(),
		Yongsin:   decision,
		Groups:    sibsin.CountGroups(p),
	}
	if r.Missing == nil {
		r.Missing = []ganji.Element{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.Natal = natal(p)
		return nil
	})
	g.Go(func() error {
		r.Patterns = pattern.DetectAll(p)
		logger.Debug("patterns detected", "count", countDetected(r.Patterns))
		return nil
	})
	if opts.Query != nil {
		q := *opts.Query
		g.Go(func() error {
			s := timing.Score(scored, q, timing.Options{})
			r.Timing = &s
			logger.Debug("timing scored", "year", q.Year, "score", s.WeightedScore, "grade", s.Grade)
			return nil
		})
	}
	if opts.EndYear != 0 {
		g.Go(func() error {
			t, err := trend.AnalyzeParallel(gctx, scored, opts.StartYear, opts.EndYear, opts.Workers,
				trend.Options{MaxSpan: opts.MaxSpan})
			if err != nil {
				return fmt.Errorf("trend: %w", err)
			}
			r.Trend = &t
			logger.Debug("trend analyzed", "start", t.StartYear, "end", t.EndYear, "direction", t.Trend)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	logger.Info("report built", "yongsin", decision.Primary, "patterns", countDetected(r.Patterns))
	return r, nil
}

func natal(p chart.BirthProfile) []NatalPillar {
	dm := p.DayMaster()
	out := make([]NatalPillar, 0, len(chart.Positions))
	for _, pos := range chart.Positions {
		pl := p.PillarAt(pos)
		st := stage.Of(dm, pl.Branch)
		np := NatalPillar{
			Position:   pos,
			Pillar:     pl,
			BranchRole: sibsin.RoleOfBranch(dm, pl.Branch),
			Stage:      st.Stage,
			Energy:     st.Energy,
			StageScore: st.Score,
		}
		if pos != chart.DayPillar {
			np.StemRole = sibsin.RoleOf(dm, pl.Stem)
		}
		out = append(out, np)
	}
	return out
}

func countDetected(results []pattern.Result) int {
	n := 0
	for _, r := range results {
		if r.Detected {
			n++
		}
	}
	return n
}
