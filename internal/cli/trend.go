package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/format"
	"github.com/roach88/saju/internal/store"
	"github.com/roach88/saju/internal/trend"
	"github.com/roach88/saju/internal/yongsin"
)

// TrendOptions holds flags for the trend command.
type TrendOptions struct {
	*RootOptions
	profileFlags
	Start   int
	End     int
	Month   int
	Yongsin bool
}

type trendParams struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Month int `json:"month,omitempty"`
}

// NewTrendCommand creates the trend command.
func NewTrendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TrendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trend <profile.cue>",
		Short: "Analyze scores over a range of years",
		Long: `Score every year in an inclusive range and report peaks, lows, the
overall direction, decade-cycle transitions and phases.

Years before birth are skipped and the span is capped by --max-span.
Years are scored in parallel over --workers goroutines.

Examples:
  saju trend people.cue --name alice --start 2024 --end 2034
  saju trend people.cue --start 2000 --end 2050 --month 6 --format markdown
  saju trend people.cue --name alice --start 2024 --end 2034 --yongsin`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrend(opts, args[0], cmd)
		},
	}

	opts.profileFlags.register(cmd)
	cmd.Flags().IntVar(&opts.Start, "start", 0, "first year (required)")
	cmd.Flags().IntVar(&opts.End, "end", 0, "last year, inclusive (required)")
	cmd.Flags().IntVar(&opts.Month, "month", 0, "score each year at this month")
	cmd.Flags().BoolVar(&opts.Yongsin, "yongsin", false, "derive favorable elements when the profile declares none")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runTrend(opts *TrendOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	if opts.Month < 0 || opts.Month > 12 {
		return argError(f, "month %d out of range 1..12", opts.Month)
	}
	if opts.MaxSpan < 1 || opts.MaxSpan > trend.MaxSpan {
		return argError(f, "max-span must be within 1..%d, got %d", trend.MaxSpan, opts.MaxSpan)
	}

	p, err := loadProfile(path, opts.Name)
	if err != nil {
		return loadFailure(f, err)
	}
	if opts.Yongsin && len(p.Favorable) == 0 && len(p.Unfavorable) == 0 {
		r := yongsin.Determine(p)
		p = r.Apply(p)
		logger.Debug("applied favorable elements", "type", r.Type, "primary", r.Primary)
	}

	t, err := trend.AnalyzeParallel(cmd.Context(), p, opts.Start, opts.End, opts.Workers,
		trend.Options{MaxSpan: opts.MaxSpan, Month: opts.Month})
	if err != nil {
		return WrapExitError(ExitCommandError, "trend analysis failed", err)
	}
	logger.Debug("trend analyzed", "profile", p.Name, "years", len(t.Scores), "direction", t.Trend)

	var runID string
	if opts.Save {
		params := trendParams{Start: opts.Start, End: opts.End, Month: opts.Month}
		if runID, err = opts.archive(cmd.Context(), logger, p, store.KindTrend, params, t); err != nil {
			return err
		}
	}
	return f.Result(t, runID, func(m format.Mode) string { return format.Trend(t, m) })
}
