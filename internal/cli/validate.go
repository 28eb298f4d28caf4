package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool         `json:"valid"`
	Profiles []string     `json:"profiles"`
	Errors   []*LoadError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate CUE birth profiles",
		Long: `Compile every profile in a CUE file or package directory and report
all schema, pillar and consistency errors with their codes and positions.

Exit codes:
  0 - All profiles valid
  1 - One or more profiles invalid
  2 - Command error (path not found)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	profiles, errs := LoadProfiles(path)
	if len(errs) == 1 && errs[0].Code == ErrCodeNotFound {
		if err := f.Error(errs[0].Code, errs[0].Message, nil); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, errs[0].Message)
	}

	result := ValidationResult{Valid: len(errs) == 0, Profiles: []string{}, Errors: errs}
	for _, p := range profiles {
		f.VerboseLog("profile %s: %s %s %s %s", p.Name, p.Year, p.Month, p.Day, p.Hour)
		result.Profiles = append(result.Profiles, p.Name)
	}

	if f.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(f.Writer, validationText(result))
	}
	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(errs)))
	}
	return nil
}

func validationText(r ValidationResult) string {
	var b strings.Builder
	if r.Valid {
		fmt.Fprintf(&b, "✓ %d profile(s) valid", len(r.Profiles))
		return b.String()
	}
	fmt.Fprintf(&b, "✗ %d error(s)", len(r.Errors))
	for _, e := range r.Errors {
		b.WriteString("\n  ")
		if e.File != "" {
			fmt.Fprintf(&b, "%s:%d: ", e.File, e.Line)
		}
		fmt.Fprintf(&b, "[%s]", e.Code)
		if e.Field != "" {
			fmt.Fprintf(&b, " %s:", e.Field)
		}
		fmt.Fprintf(&b, " %s", e.Message)
	}
	return b.String()
}
