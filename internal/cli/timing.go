package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/format"
	"github.com/roach88/saju/internal/store"
	"github.com/roach88/saju/internal/timing"
	"github.com/roach88/saju/internal/yongsin"
)

// TimingOptions holds flags for the timing command.
type TimingOptions struct {
	*RootOptions
	profileFlags
	Year    int
	Month   int
	Day     int
	Yongsin bool
}

// NewTimingCommand creates the timing command.
func NewTimingCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TimingOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "timing <profile.cue>",
		Short: "Score a year, month or day against a chart",
		Long: `Score a period against a birth chart by layering the decade cycle, year,
month and day pillars that apply to it.

Examples:
  saju timing people.cue --name alice --year 2024
  saju timing people.cue --name alice --year 2024 --month 3 --day 15
  saju timing people.cue --year 2024 --yongsin --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTiming(opts, args[0], cmd)
		},
	}

	opts.profileFlags.register(cmd)
	cmd.Flags().IntVar(&opts.Year, "year", 0, "year to score (required)")
	cmd.Flags().IntVar(&opts.Month, "month", 0, "month 1..12")
	cmd.Flags().IntVar(&opts.Day, "day", 0, "day of month; needs --month")
	cmd.Flags().BoolVar(&opts.Yongsin, "yongsin", false, "derive favorable elements when the profile declares none")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func runTiming(opts *TimingOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	if opts.Year < 1 {
		return argError(f, "year must be positive, got %d", opts.Year)
	}
	q := timing.Query{Year: opts.Year, Month: opts.Month, Day: opts.Day}
	if err := q.Validate(); err != nil {
		return argError(f, "%v", err)
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

	s := timing.Score(p, q, timing.Options{})
	logger.Debug("timing scored", "profile", p.Name, "year", q.Year, "score", s.WeightedScore)

	var runID string
	if opts.Save {
		if runID, err = opts.archive(cmd.Context(), logger, p, store.KindTiming, q, s); err != nil {
			return err
		}
	}
	return f.Result(s, runID, func(m format.Mode) string { return format.Timing(s, m) })
}
