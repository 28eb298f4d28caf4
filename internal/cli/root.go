package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text" | "markdown"
	DB      string
	Workers int
	MaxSpan int

	configErr error
}

// ValidFormats defines the allowed output formats.
var ValidFormats = config.Formats

// NewRootCommand creates the root command for the saju CLI. Flag defaults
// come from the SAJU_* environment; explicit flags override them.
func NewRootCommand() *cobra.Command {
	// A bad environment is reported when a command runs, so --help works.
	cfg, err := config.Load()
	opts := &RootOptions{configErr: err}

	cmd := &cobra.Command{
		Use:   "saju",
		Short: "saju - four pillars timing and compatibility engine",
		Long: `Score the timing of years, months and days against a four-pillars birth
chart, follow multi-year trends and fuse chart-to-chart compatibility into
guidance. Profiles are authored in CUE.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.configErr != nil {
				return WrapExitError(ExitCommandError, "invalid environment", opts.configErr)
			}
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Workers < 1 {
				return NewExitError(ExitCommandError, fmt.Sprintf("workers must be positive, got %d", opts.Workers))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", cfg.Verbose, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|text|markdown)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", cfg.DB, "report archive used by --save and history")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", cfg.Workers, "parallel workers for trend scoring")
	cmd.PersistentFlags().IntVar(&opts.MaxSpan, "max-span", cfg.MaxSpan, "maximum trend span in years")

	cmd.AddCommand(NewChartCommand(opts))
	cmd.AddCommand(NewTimingCommand(opts))
	cmd.AddCommand(NewTrendCommand(opts))
	cmd.AddCommand(NewPatternsCommand(opts))
	cmd.AddCommand(NewCompatCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// logger returns a text logger on w. Verbose enables debug output.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
