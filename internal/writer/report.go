package writer

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ashathullah/voter-shield/internal/voter"
)

// LowSplitPage is one entry in a report's integrity.marker_splits_failed_pages.
type LowSplitPage struct {
	PageNo       int    `json:"page_no"`
	SourceImage  string `json:"source_image"`
	MarkerSplits int    `json:"marker_splits"`
}

// Integrity summarizes marker-split health across a document's pages
// (spec §4.5, §6).
type Integrity struct {
	MarkerSplitsTotal      *int           `json:"marker_splits_total"`
	MarkerSplitsMinPage    *int           `json:"marker_splits_min_page"`
	MarkerSplitsFailedPages []LowSplitPage `json:"marker_splits_failed_pages"`
}

// Report is the per-document report.json schema (spec §6).
type Report struct {
	RunID           string    `json:"run_id"`
	PipelineVersion string    `json:"pipeline_version"`
	StartedAtUTC    time.Time `json:"started_at_utc"`
	FinishedAtUTC   time.Time `json:"finished_at_utc"`
	SourcePDFName   string    `json:"source_pdf_name"`
	SourcePDFPath   string    `json:"source_pdf_path"`
	DocID           string    `json:"doc_id"`
	DPI             int       `json:"dpi"`
	OCRWorkers      int       `json:"ocr_workers"`
	PagesTotal      int       `json:"pages_total"`
	ExtractedVoters int       `json:"extracted_voters"`

	Summary   voter.SummaryTotals `json:"summary"`
	Integrity Integrity           `json:"integrity"`
}

// WriteReport writes report to path atomically as indented JSON, matching
// write_report_json_atomic.
func WriteReport(report Report, path string) error {
	return atomicWrite(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	})
}
