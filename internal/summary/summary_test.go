package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractsEnglishTotals(t *testing.T) {
	text := "Male Electors 1234\nFemale Electors 1180\nThird Gender Electors 2\nTotal Electors 2416"
	got := Parse(text)
	require.NotNil(t, got.TotalMale)
	assert.Equal(t, 1234, *got.TotalMale)
	require.NotNil(t, got.TotalFemale)
	assert.Equal(t, 1180, *got.TotalFemale)
	require.NotNil(t, got.TotalThirdGender)
	assert.Equal(t, 2, *got.TotalThirdGender)
	require.NotNil(t, got.TotalVotersExpected)
	assert.Equal(t, 2416, *got.TotalVotersExpected)
}

func TestParseFallsBackToTamilTotal(t *testing.T) {
	text := "Male 100\nFemale 90\nமொத்தம் வாக்காளர்கள் 190"
	got := Parse(text)
	require.NotNil(t, got.TotalVotersExpected)
	assert.Equal(t, 190, *got.TotalVotersExpected)
}

func TestParseEmptyTextReturnsAllNil(t *testing.T) {
	got := Parse("")
	assert.Nil(t, got.TotalMale)
	assert.Nil(t, got.TotalFemale)
	assert.Nil(t, got.TotalThirdGender)
	assert.Nil(t, got.TotalVotersExpected)
}

func TestParseMissingFieldsLeftNil(t *testing.T) {
	got := Parse("no numbers here at all")
	assert.Nil(t, got.TotalMale)
	assert.Nil(t, got.TotalVotersExpected)
}
