package runstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashathullah/voter-shield/internal/voter"
)

func TestSetStatusWritesSnapshotAndEvent(t *testing.T) {
	root := t.TempDir()
	rs, err := New(root, "run-1")
	require.NoError(t, err)

	require.NoError(t, rs.SetStatus("doc1", "doc1.pdf", voter.StatusInProgress, "convert"))
	require.NoError(t, rs.SetStatus("doc1", "doc1.pdf", voter.StatusCompleted, "done"))

	snapshotPath := filepath.Join(root, "run-1", "progress.csv")
	require.FileExists(t, snapshotPath)

	eventsPath := filepath.Join(root, "run-1", "events.jsonl")
	data, err := os.ReadFile(eventsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pdf_stem":"doc1"`)

	s, ok := rs.Get("doc1")
	require.True(t, ok)
	assert.Equal(t, voter.StatusCompleted, s.Status)
	assert.NotNil(t, s.StartedAtUTC)
	assert.NotNil(t, s.FinishedAtUTC)
}

func TestLoadDemotesInProgressToPending(t *testing.T) {
	root := t.TempDir()
	rs, err := New(root, "run-1")
	require.NoError(t, err)
	require.NoError(t, rs.SetStatus("doc1", "doc1.pdf", voter.StatusInProgress, "crop"))

	reloaded, err := Load(root, "run-1")
	require.NoError(t, err)

	s, ok := reloaded.Get("doc1")
	require.True(t, ok)
	assert.Equal(t, voter.StatusPending, s.Status)
}

func TestLoadMissingProgressFileIsEmptyState(t *testing.T) {
	root := t.TempDir()
	rs, err := Load(root, "fresh-run")
	require.NoError(t, err)
	_, ok := rs.Get("doc1")
	assert.False(t, ok)
}

func TestShouldSkipOnlyWhenCompletedAndOutputExists(t *testing.T) {
	root := t.TempDir()
	rs, err := New(root, "run-1")
	require.NoError(t, err)
	require.NoError(t, rs.SetStatus("doc1", "doc1.pdf", voter.StatusCompleted, "done"))

	assert.True(t, rs.ShouldSkip("doc1", true))
	assert.False(t, rs.ShouldSkip("doc1", false))
	assert.False(t, rs.ShouldSkip("doc2", true))
}
