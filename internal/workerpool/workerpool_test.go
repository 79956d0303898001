package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProcessesAllItems(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	var count int64
	err := Run(context.Background(), 2, items, func(_ context.Context, _ int, item int) error {
		atomic.AddInt64(&count, int64(item))
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 15, count)
}

func TestRunPropagatesFirstError(t *testing.T) {
	items := []int{1, 2, 3}
	boom := errors.New("boom")
	err := Run(context.Background(), 1, items, func(_ context.Context, index int, _ int) error {
		if index == 1 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestRunEmptyItems(t *testing.T) {
	err := Run(context.Background(), 4, []int{}, func(_ context.Context, _ int, _ int) error {
		t.Fatal("should not be called")
		return nil
	})
	require.NoError(t, err)
}
