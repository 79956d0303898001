package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashathullah/voter-shield/internal/objectstore"
)

func TestFetchResetsAndDownloads(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.pdf")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))

	store := objectstore.NewMemoryStore()
	store.Seed("rolls", "2024/test-ENG-001-WI.pdf", []byte("pdfbytes"))

	f := New(store)
	require.NoError(t, f.Fetch(context.Background(), []string{"s3://rolls/2024/"}, dir))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale file should have been removed by reset")

	data, err := os.ReadFile(filepath.Join(dir, "test-ENG-001-WI.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdfbytes", string(data))
}

func TestFetchMissingObjectIsFatal(t *testing.T) {
	dir := t.TempDir()
	store := objectstore.NewMemoryStore()
	f := New(store)
	err := f.Fetch(context.Background(), []string{"s3://rolls/missing/"}, dir)
	require.Error(t, err)
}

func TestUploadDirectoryPutsEveryFileUnderPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "final_voter_data.csv"), []byte("a,b"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc1.report.json"), []byte("{}"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o750))

	store := objectstore.NewMemoryStore()
	require.NoError(t, UploadDirectory(context.Background(), store, dir, "s3://out/run-1/"))

	objs, err := store.List(context.Background(), "s3://out/run-1/")
	require.NoError(t, err)
	assert.Len(t, objs, 2)
}
