package objectstore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreListGetPut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Seed("rolls", "2024/a.pdf", []byte("A"))
	store.Seed("rolls", "2024/b.pdf", []byte("B"))

	objs, err := store.List(ctx, "s3://rolls/2024/")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "2024/a.pdf", objs[0].Key)

	rc, err := store.Get(ctx, objs[0])
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "A", string(data))

	require.NoError(t, store.Put(ctx, "out", "final_voter_data.csv", strings.NewReader(""), 0))
}

func TestMemoryStoreListMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.List(ctx, "s3://rolls/missing/")
	require.ErrorIs(t, err, ErrNotFound)
}
