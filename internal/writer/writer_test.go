package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ashathullah/voter-shield/internal/voter"
)

func sampleRecords() []voter.Record {
	age := 30
	part := 5
	return []voter.Record{
		{
			Assembly: "Anna Nagar", PartNo: &part, Street: "Main St", SerialNo: 1,
			EPICID: "ABC1234567", Name: "Jane Doe", HouseNo: "12", Age: &age, Gender: "female",
			TotalFlags: 0, FlagReasons: "", Explanation1: "",
			DocID: "doc1", PageNo: 1, IntraIndex: 1, SourceImage: "doc1_page_01_stacked_crops.jpg",
		},
	}
}

func TestWriteCSVProducesHeaderAndRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc1.csv")
	require.NoError(t, WriteCSV(sampleRecords(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "ABC1234567", rows[1][4])
	assert.NotContains(t, rows[0], "doc_id")
	assert.NotContains(t, rows[0], "source_image")
}

func TestWriteXLSXProducesReadableWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc1.xlsx")
	require.NoError(t, WriteXLSX(sampleRecords(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, header, 2)
	assert.Equal(t, "epic_id", header[0][4])
	assert.Equal(t, "ABC1234567", header[1][4])
}

func TestWriteReportWritesExpectedSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc1.report.json")

	total := 30
	report := Report{
		RunID: "run-1", DocID: "doc1", PagesTotal: 3, ExtractedVoters: 30,
		Summary: voter.SummaryTotals{TotalVotersExpected: &total},
	}
	require.NoError(t, WriteReport(report, path))
	require.FileExists(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id": "run-1"`)
	assert.Contains(t, string(data), `"doc_id": "doc1"`)
	assert.Contains(t, string(data), `"total_voters_expected": 30`)
	assert.Contains(t, string(data), `"marker_splits_failed_pages"`)
}
