package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/format"
	"github.com/roach88/saju/internal/report"
	"github.com/roach88/saju/internal/store"
	"github.com/roach88/saju/internal/timing"
)

// ChartOptions holds flags for the chart command.
type ChartOptions struct {
	*RootOptions
	profileFlags
	Year  int
	Month int
	Day   int
	Start int
	End   int
}

type chartParams struct {
	Query *timing.Query `json:"query,omitempty"`
	Start int           `json:"start,omitempty"`
	End   int           `json:"end,omitempty"`
}

// NewChartCommand creates the chart command.
func NewChartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "chart <profile.cue>",
		Short: "Full reading of one birth chart",
		Long: `Read a birth chart: element balance, favorable elements, the role and
life-cycle stage of every natal pillar and the secondary patterns.

--year adds a timing score and --start/--end add a multi-year trend. When
the profile declares no favorable elements the derived ones are used.

Examples:
  saju chart people.cue --name alice
  saju chart people.cue --name alice --year 2024 --start 2024 --end 2030`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(opts, args[0], cmd)
		},
	}

	opts.profileFlags.register(cmd)
	cmd.Flags().IntVar(&opts.Year, "year", 0, "add a timing score for this year")
	cmd.Flags().IntVar(&opts.Month, "month", 0, "month for the timing score")
	cmd.Flags().IntVar(&opts.Day, "day", 0, "day for the timing score")
	cmd.Flags().IntVar(&opts.Start, "start", 0, "first trend year")
	cmd.Flags().IntVar(&opts.End, "end", 0, "last trend year; enables the trend section")

	return cmd
}

func runChart(opts *ChartOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	if opts.Year == 0 && (opts.Month != 0 || opts.Day != 0) {
		return argError(f, "--month and --day need --year")
	}
	if opts.End != 0 && opts.Start == 0 {
		return argError(f, "--end needs --start")
	}

	p, err := loadProfile(path, opts.Name)
	if err != nil {
		return loadFailure(f, err)
	}

	ro := report.Options{
		StartYear: opts.Start,
		EndYear:   opts.End,
		MaxSpan:   opts.MaxSpan,
		Workers:   opts.Workers,
		Logger:    logger,
	}
	params := chartParams{Start: opts.Start, End: opts.End}
	if opts.Year != 0 {
		ro.Query = &timing.Query{Year: opts.Year, Month: opts.Month, Day: opts.Day}
		params.Query = ro.Query
	}
	r, err := report.Build(cmd.Context(), p, ro)
	if err != nil {
		return argError(f, "%v", err)
	}

	var runID string
	if opts.Save {
		if runID, err = opts.archive(cmd.Context(), logger, p, store.KindChart, params, r); err != nil {
			return err
		}
	}
	return f.Result(r, runID, func(m format.Mode) string { return format.Report(r, m) })
}
