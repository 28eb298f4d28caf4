package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/saju/internal/canon"
	"github.com/roach88/saju/internal/compat"
	"github.com/roach88/saju/internal/format"
	"github.com/roach88/saju/internal/harness"
	"github.com/roach88/saju/internal/store"
)

// CompatOptions holds flags for the compat command.
type CompatOptions struct {
	*RootOptions
	profileFlags
	Partner     string
	PartnerFile string
	Graph       string
	Astro       string
}

type compatParams struct {
	// Partner is the partner profile's fingerprint.
	Partner string                `json:"partner"`
	Graph   *compat.GraphAnalysis `json:"graph,omitempty"`
	Astro   *compat.AstroData     `json:"astro,omitempty"`
}

// NewCompatCommand creates the compat command.
func NewCompatCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompatOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compat <profile.cue>",
		Short: "Score the compatibility of two charts",
		Long: `Score two charts against each other and fuse the result with optional
relationship-graph and astrological inputs into prioritised actions,
dynamics and timeframe-tagged insights.

The partner is read from the same file unless --partner-file is given.
--graph and --astro name JSON files in the shape of the fused output's
inputs.

Examples:
  saju compat people.cue --name alice --partner bora
  saju compat alice.cue --partner-file bora.cue --graph graph.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompat(opts, args[0], cmd)
		},
	}

	opts.profileFlags.register(cmd)
	cmd.Flags().StringVar(&opts.Partner, "partner", "", "partner profile name")
	cmd.Flags().StringVar(&opts.PartnerFile, "partner-file", "", "file holding the partner profile")
	cmd.Flags().StringVar(&opts.Graph, "graph", "", "JSON file with a relationship-graph analysis")
	cmd.Flags().StringVar(&opts.Astro, "astro", "", "JSON file with astrological synastry data")

	return cmd
}

func runCompat(opts *CompatOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	if opts.Partner == "" && opts.PartnerFile == "" {
		return argError(f, "--partner or --partner-file is required")
	}
	a, err := loadProfile(path, opts.Name)
	if err != nil {
		return loadFailure(f, err)
	}
	partnerPath := opts.PartnerFile
	if partnerPath == "" {
		partnerPath = path
	}
	b, err := loadProfile(partnerPath, opts.Partner)
	if err != nil {
		return loadFailure(f, err)
	}

	in := compat.FusionInput{Saju: compat.Analyze(a, b)}
	if err := readJSON(opts.Graph, &in.Graph); err != nil {
		return argError(f, "graph: %v", err)
	}
	if err := readJSON(opts.Astro, &in.Astro); err != nil {
		return argError(f, "astro: %v", err)
	}
	out := harness.CompatResult{Saju: in.Saju, Fusion: compat.Fuse(in)}
	logger.Debug("compatibility fused", "a", a.Name, "b", b.Name, "overall", out.Fusion.Overall)

	var runID string
	if opts.Save {
		partnerID, err := canon.Fingerprint(canon.DomainProfile, b)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to fingerprint partner", err)
		}
		params := compatParams{Partner: partnerID, Graph: in.Graph, Astro: in.Astro}
		if runID, err = opts.archive(cmd.Context(), logger, a, store.KindCompat, params, out); err != nil {
			return err
		}
	}
	return f.Result(out, runID, func(m format.Mode) string { return format.Compat(out.Saju, out.Fusion, m) })
}

// readJSON decodes the file at path into dst. An empty path is a no-op.
func readJSON(path string, dst any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
