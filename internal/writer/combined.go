package writer

import (
	"fmt"
	"path/filepath"

	"github.com/ashathullah/voter-shield/internal/voter"
)

// WriteDocument writes one document's records to <csvDir>/<docID>.<ext>,
// where ext is "csv" or "xlsx" per format (spec §4.8).
func WriteDocument(records []voter.Record, csvDir, docID, format string) error {
	path := filepath.Join(csvDir, docID+"."+format)
	switch format {
	case "xlsx":
		return WriteXLSX(records, path)
	case "csv":
		return WriteCSV(records, path)
	default:
		return fmt.Errorf("writer: unknown format %q", format)
	}
}

// WriteCombined writes the combined final_voter_data.<ext> over every
// document's records, when enabled (spec §4.8's "Optionally write a
// combined ... over all documents").
func WriteCombined(records []voter.Record, outDir, format string) error {
	path := filepath.Join(outDir, "final_voter_data."+format)
	switch format {
	case "xlsx":
		return WriteXLSX(records, path)
	case "csv":
		return WriteCSV(records, path)
	default:
		return fmt.Errorf("writer: unknown format %q", format)
	}
}
