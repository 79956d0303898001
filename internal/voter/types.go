// Package voter defines the core data model of the voter-roll extraction
// pipeline: documents, pages, cells, voter records and their owning run.
package voter

import "time"

// Language identifies the OCR language set a document was shot in, decided
// from a substring in the filename (see langroute.Classify).
type Language int

const (
	English Language = iota
	TamilEnglish
)

func (l Language) String() string {
	if l == TamilEnglish {
		return "tam+eng"
	}
	return "eng"
}

// PageClass is the role a rendered page plays within a document.
type PageClass int

const (
	ClassCover PageClass = iota
	ClassVoterGrid
	ClassSummary
)

// Document is one input PDF.
type Document struct {
	DocID       string
	SourceURI   string
	SourcePath  string
	Language    Language
	PagesTotal  int
}

// Page is one page of a document after classification.
type Page struct {
	DocID string
	// PageNo is 1-based over the whole PDF for cover/summary pages, and
	// renumbered 1..N within the document for voter-grid pages.
	PageNo int
	Class  PageClass
}

// PageHeader is the top strip of a voter-grid page.
type PageHeader struct {
	Assembly string
	PartNo   *int
	Street   string
}

// SummaryTotals are best-effort counts parsed from a document's summary page.
type SummaryTotals struct {
	TotalMale           *int `json:"total_male"`
	TotalFemale         *int `json:"total_female"`
	TotalThirdGender    *int `json:"total_third_gender"`
	TotalVotersExpected *int `json:"total_voters_expected"`
}

// Record is one extracted voter row, owned by exactly one Document and
// produced by exactly one Cell.
type Record struct {
	Assembly string
	PartNo   *int
	Street   string
	SerialNo int

	EPICID      string
	Name        string
	FatherName  string
	MotherName  string
	HusbandName string
	OtherName   string
	HouseNo     string
	Age         *int
	Gender      string

	TotalFlags    int
	FlagReasons   string
	Explanation1  string

	// Bookkeeping, never written to CSV/XLSX (writer.Row omits them).
	DocID       string
	PageNo      int
	IntraIndex  int // 1..30, position within the page
	SourceImage string
}

// Status is the terminal (or in-flight) lifecycle state of a Document
// within a Run.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusIncomplete Status = "incomplete"
)

// PdfState is the run-state ledger entry for one document.
type PdfState struct {
	DocID                 string
	PdfName               string
	Status                Status
	Stage                 string
	StartedAtUTC          *time.Time
	FinishedAtUTC         *time.Time
	ExtractedVoters       *int
	TotalVotersExpected   *int
	CompletenessRatio     *float64
	Warnings              string
	Error                 string
}
