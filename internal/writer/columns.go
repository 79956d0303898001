// Package writer implements the Writer stage (spec §4.8): per-document
// CSV/XLSX output with a fixed preferred column order, atomic writes, and
// per-document report JSON, plus an optional combined output across all
// documents. Grounded on write_csv.py's _fieldnames_for_records /
// write_pdf_csv_atomic / write_pdf_xlsx_atomic / write_report_json_atomic.
package writer

import (
	"strconv"

	"github.com/ashathullah/voter-shield/internal/quality"
	"github.com/ashathullah/voter-shield/internal/voter"
)

// Columns is the fixed output column order (spec §4.8). Unlike the
// source, which derives columns dynamically from whichever dict keys a
// record happens to carry, voter.Record is a closed struct, so every
// document's output has exactly this column set.
var Columns = []string{
	"assembly", "part_no", "street", "serial_no",
	"epic_id", "name", "father_name", "mother_name", "husband_name", "other_name",
	"house_no", "age", "gender",
	"TOTAL_FLAGS", "FLAG_REASONS", "EXPLANATION_1",
}

// Row renders a record's cells in Columns order, as strings, matching the
// bookkeeping-key exclusion of the source (source_image, ocr_text,
// doc_id, page_no, voter_no are never written).
func Row(r voter.Record) []string {
	return []string{
		r.Assembly,
		intPtrString(r.PartNo),
		r.Street,
		strconv.Itoa(r.SerialNo),
		r.EPICID,
		r.Name,
		r.FatherName,
		r.MotherName,
		r.HusbandName,
		r.OtherName,
		r.HouseNo,
		intPtrString(r.Age),
		r.Gender,
		quality.FormatTotalFlags(r.TotalFlags),
		r.FlagReasons,
		r.Explanation1,
	}
}

func intPtrString(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
