package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashathullah/voter-shield/internal/voter"
)

func cellBlock(epic, name, father, houseNo, age, gender string) string {
	return strings.Join([]string{
		"EPIC ID: " + epic,
		"Name: " + name,
		"Father's Name: " + father,
		"House No: " + houseNo,
		"Age: " + age,
		"Gender: " + gender,
	}, "\n")
}

func TestSplitCellsOnMarkerLines(t *testing.T) {
	text := cellBlock("ABC1234567", "Jane Doe", "John Doe", "12", "42", "Female") +
		"\n--- VOTEREND ---\n" +
		cellBlock("XYZ7654321", "Amit Kumar", "Ravi Kumar", "14", "31", "Male") +
		"\n--- VOTEREND ---\n"

	result := SplitCells(text, 2)
	require.Len(t, result.Chunks, 2)
	assert.False(t, result.LowSplit)
}

func TestSplitCellsFlagsLowSplit(t *testing.T) {
	text := cellBlock("ABC1234567", "Jane Doe", "John Doe", "12", "42", "Female") + "\n--- VOTEREND ---\n"
	result := SplitCells(text, 25)
	assert.True(t, result.LowSplit)
	assert.Len(t, result.Chunks, 1)
}

func TestParseCellExtractsFields(t *testing.T) {
	text := cellBlock("ABC1234567", "Jane Doe", "John Doe", "12", "42", "Female")
	rec := ParseCell(text, voter.English)

	assert.Equal(t, "ABC1234567", rec.EPICID)
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "John Doe", rec.FatherName)
	assert.Equal(t, "12", rec.HouseNo)
	require.NotNil(t, rec.Age)
	assert.Equal(t, 42, *rec.Age)
	assert.Equal(t, "female", rec.Gender)
}

func TestParseCellRejectsOutOfRangeAge(t *testing.T) {
	text := cellBlock("ABC1234567", "Jane Doe", "John Doe", "12", "999", "Female")
	rec := ParseCell(text, voter.English)
	assert.Nil(t, rec.Age)
}

func TestParsePageHeaderExtractsAssemblyPartStreet(t *testing.T) {
	text := "Name: Anna Nagar Part No: 42\nSection No and Name: Ward 7, Main Street"
	header := ParsePageHeader(text, voter.English)
	assert.Equal(t, "Anna Nagar", header.Assembly)
	require.NotNil(t, header.PartNo)
	assert.Equal(t, 42, *header.PartNo)
	assert.Equal(t, "Ward 7, Main Street", header.Street)
}

func TestParsePageHeaderEmptyTextReturnsZeroValue(t *testing.T) {
	header := ParsePageHeader("", voter.English)
	assert.Empty(t, header.Assembly)
	assert.Nil(t, header.PartNo)
}

func TestExtractPageAttachesCoordinates(t *testing.T) {
	stacked := cellBlock("ABC1234567", "Jane Doe", "John Doe", "12", "42", "Female") + "\n--- VOTEREND ---\n"
	header := "Name: Anna Nagar Part No: 42\nSection No and Name: Ward 7, Main Street"

	result := ExtractPage(stacked, header, "doc1", 3, "doc1_page_03_stacked_crops.jpg", voter.English, 1)
	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "doc1", rec.DocID)
	assert.Equal(t, 3, rec.PageNo)
	assert.Equal(t, 1, rec.IntraIndex)
	assert.Equal(t, "Anna Nagar", rec.Assembly)
}
