package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateJobsOrdersStackedThenStreetThenCoverThenSummary(t *testing.T) {
	crops := []string{
		"/crops/doc1_page_02_stacked_crops.jpg",
		"/crops/doc1_page_01_stacked_crops.jpg",
	}
	street := []string{
		"/crops/doc1_page_02_street.png",
		"/crops/doc1_page_01_street.png",
	}
	covers := []string{
		"/jpg/doc1_cover_02.jpg",
		"/jpg/doc1_cover_01.jpg",
	}
	summary := "/jpg/doc1_summary.jpg"

	jobs := EnumerateJobs(crops, street, covers, summary, "/ocr")
	require.Len(t, jobs, 6)

	assert.Equal(t, "/ocr/doc1_page_01_stacked_ocr.txt", jobs[0].OutputPath)
	assert.Equal(t, "/ocr/doc1_page_02_stacked_ocr.txt", jobs[1].OutputPath)
	assert.Equal(t, []string{"--psm", "6", "--oem", "1"}, jobs[0].PSMFlags)

	assert.Equal(t, "/ocr/doc1_page_01_street.txt", jobs[2].OutputPath)
	assert.Equal(t, []string{"--psm", "6"}, jobs[2].PSMFlags)

	assert.Equal(t, "/ocr/doc1_cover_01_ocr.txt", jobs[4].OutputPath)
	assert.Equal(t, "/ocr/doc1_summary_ocr.txt", jobs[5].OutputPath)
}

func TestEnumerateJobsSkipsSummaryWhenAbsent(t *testing.T) {
	jobs := EnumerateJobs(nil, nil, nil, "", "/ocr")
	assert.Empty(t, jobs)
}

func TestTessLangByFilename(t *testing.T) {
	jobs := EnumerateJobs([]string{"/crops/doc-TAM-1_page_01_stacked_crops.jpg"}, nil, nil, "", "/ocr")
	require.Len(t, jobs, 1)
	assert.Equal(t, "tam+eng", jobs[0].Lang)

	jobs = EnumerateJobs([]string{"/crops/doc-ENG-1_page_01_stacked_crops.jpg"}, nil, nil, "", "/ocr")
	require.Len(t, jobs, 1)
	assert.Equal(t, "eng", jobs[0].Lang)
}

func TestParseStackedFilename(t *testing.T) {
	info, ok := ParseStackedFilename("doc1_page_07_stacked_ocr.txt")
	require.True(t, ok)
	assert.Equal(t, "doc1", info.DocID)
	assert.Equal(t, 7, info.PageNo)

	_, ok = ParseStackedFilename("doc1_summary_ocr.txt")
	assert.False(t, ok)
}
