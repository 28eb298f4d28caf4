package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/format"
	"github.com/roach88/saju/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Profile string
	Kind    string
	Limit   int
	Show    string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived reports",
		Long: `List reports archived with --save, oldest first, or print one report
with --show.

Examples:
  saju history --db saju.db
  saju history --kind trend --limit 10
  saju history --show 0190a1b2-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Profile, "profile", "", "filter by profile fingerprint")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "filter by report kind (chart|timing|trend|patterns|compat)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of reports")
	cmd.Flags().StringVar(&opts.Show, "show", "", "print the archived report with this run ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	if opts.Limit < 0 {
		return argError(f, "limit must be non-negative, got %d", opts.Limit)
	}

	st, err := opts.openExisting(logger)
	if err != nil {
		if outErr := f.Error(ErrCodeStore, err.Error(), nil); outErr != nil {
			return outErr
		}
		return err
	}
	defer st.Close()

	if opts.Show != "" {
		rec, err := st.GetReport(cmd.Context(), opts.Show)
		if errors.Is(err, store.ErrNotFound) {
			if outErr := f.Error(ErrCodeNotFound, err.Error(), nil); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitCommandError, "report not found", err)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read archive", err)
		}
		// The stored result is canonical JSON; print it as is.
		return f.Result(rec, "", func(format.Mode) string { return string(rec.Result) })
	}

	records, err := st.ListReports(cmd.Context(), store.Filter{ProfileID: opts.Profile, Kind: opts.Kind, Limit: opts.Limit})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read archive", err)
	}
	return f.Result(records, "", func(m format.Mode) string { return format.History(records, m) })
}
