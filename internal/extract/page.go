package extract

import (
	"github.com/ashathullah/voter-shield/internal/voter"
)

// PageResult is the fully extracted content of one voter-grid page.
type PageResult struct {
	Records  []voter.Record
	Header   voter.PageHeader
	Split    SplitResult
}

// ExtractPage parses one page's stacked-crop OCR text and header-strip OCR
// text into records and a header, attaching the page's coordinates
// (doc_id, page_no, source_image, intra-page index) to every record
// (spec §4.5).
func ExtractPage(stackedText, headerText, docID string, pageNo int, sourceImage string, lang voter.Language, minSplits int) PageResult {
	split := SplitCells(stackedText, minSplits)
	header := ParsePageHeader(headerText, lang)

	records := make([]voter.Record, 0, len(split.Chunks))
	for i, chunk := range split.Chunks {
		rec := ParseCell(chunk, lang)
		rec.DocID = docID
		rec.PageNo = pageNo
		rec.IntraIndex = i + 1
		rec.SourceImage = sourceImage
		rec.Assembly = header.Assembly
		rec.PartNo = header.PartNo
		rec.Street = header.Street
		records = append(records, rec)
	}

	return PageResult{Records: records, Header: header, Split: split}
}
