package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashathullah/voter-shield/internal/voter"
)

func TestAssignOrdersByPageThenIntraIndex(t *testing.T) {
	records := []voter.Record{
		{DocID: "doc1", PageNo: 2, IntraIndex: 1, Name: "C"},
		{DocID: "doc1", PageNo: 1, IntraIndex: 2, Name: "B"},
		{DocID: "doc1", PageNo: 1, IntraIndex: 1, Name: "A"},
	}

	got := Assign(records)
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, 1, got[0].SerialNo)
	assert.Equal(t, "B", got[1].Name)
	assert.Equal(t, 2, got[1].SerialNo)
	assert.Equal(t, "C", got[2].Name)
	assert.Equal(t, 3, got[2].SerialNo)
}

func TestAssignResetsPerDocument(t *testing.T) {
	records := []voter.Record{
		{DocID: "doc2", PageNo: 1, IntraIndex: 1},
		{DocID: "doc1", PageNo: 1, IntraIndex: 1},
	}
	got := Assign(records)
	require.Len(t, got, 2)
	// Sorted by (DocID, SerialNo): doc1 first.
	assert.Equal(t, "doc1", got[0].DocID)
	assert.Equal(t, 1, got[0].SerialNo)
	assert.Equal(t, "doc2", got[1].DocID)
	assert.Equal(t, 1, got[1].SerialNo)
}
