package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const peopleCUE = `package people

profile: alice: {
	birth_year: 1990
	gender:     "male"
	pillars: {year: "庚午", month: "戊寅", day: "甲子", hour: "丙寅"}
}

profile: bora: {
	birth_year: 1991
	gender:     "female"
	pillars: {year: "辛未", month: "庚寅", day: "己丑", hour: "甲子"}
}
`

// newTestOptions returns root options as the root command would set them,
// with the archive in a temp dir.
func newTestOptions(t *testing.T, format string) *RootOptions {
	t.Helper()
	return &RootOptions{
		Format:  format,
		DB:      filepath.Join(t.TempDir(), "saju.db"),
		Workers: 2,
		MaxSpan: 200,
	}
}

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decodeData parses a JSON CLIResponse and returns its data as generic JSON.
func decodeData(t *testing.T, output string) (CLIResponse, any) {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	return resp, resp.Data
}
