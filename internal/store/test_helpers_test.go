package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/saju/internal/testutil"
)

// createTestStore creates a new store in a temp dir with sequential run IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequenceIDGenerator("run")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// trendParams mirrors the params the CLI archives for a trend run.
type trendParams struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// scoreResult is a stand-in for an engine result.
type scoreResult struct {
	Year  int    `json:"year"`
	Score int    `json:"score"`
	Grade string `json:"grade"`
}
