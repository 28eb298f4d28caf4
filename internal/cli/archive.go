package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/store"
)

// profileFlags are shared by commands that read one profile.
type profileFlags struct {
	Name string
	Save bool
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Name, "name", "n", "", "profile to use when the file declares several")
	cmd.Flags().BoolVar(&f.Save, "save", false, "archive the result in --db")
}

// archive stores result in the report archive and returns its run ID.
func (o *RootOptions) archive(ctx context.Context, logger *slog.Logger, p chart.BirthProfile, kind string, params, result any) (string, error) {
	st, err := store.Open(o.DB, store.WithLogger(logger))
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to open archive", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing archive", "error", closeErr)
		}
	}()
	rec, err := st.SaveReport(ctx, p, kind, params, result)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to archive result", err)
	}
	logger.Info("result archived", "id", rec.ID, "seq", rec.Seq, "kind", kind)
	return rec.ID, nil
}

// openExisting opens the archive without creating it.
func (o *RootOptions) openExisting(logger *slog.Logger) (*store.Store, error) {
	if _, err := os.Stat(o.DB); os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("archive not found: %s", o.DB))
	}
	st, err := store.Open(o.DB, store.WithLogger(logger))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open archive", err)
	}
	return st, nil
}

// argError reports an out-of-range flag value.
func argError(f *OutputFormatter, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if err := f.Error(ErrCodeInvalidArgs, msg, nil); err != nil {
		return err
	}
	return NewExitError(ExitCommandError, msg)
}
