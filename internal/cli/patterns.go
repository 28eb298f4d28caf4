package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/format"
	"github.com/roach88/saju/internal/pattern"
	"github.com/roach88/saju/internal/store"
)

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand(rootOpts *RootOptions) *cobra.Command {
	var pf profileFlags

	cmd := &cobra.Command{
		Use:   "patterns <profile.cue>",
		Short: "Run the secondary pattern detectors",
		Long: `Run the submission, transformation, triple-treasure and void-branch
detectors over a chart. Every detector reports, detected or not.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			logger := rootOpts.logger(cmd.ErrOrStderr())

			p, err := loadProfile(args[0], pf.Name)
			if err != nil {
				return loadFailure(f, err)
			}
			results := pattern.DetectAll(p)

			var runID string
			if pf.Save {
				runID, err = rootOpts.archive(cmd.Context(), logger, p, store.KindPatterns, map[string]any{}, results)
				if err != nil {
					return err
				}
			}
			return f.Result(results, runID, func(m format.Mode) string { return format.Patterns(results, m) })
		},
	}

	pf.register(cmd)
	return cmd
}
