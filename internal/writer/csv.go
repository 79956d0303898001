package writer

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ashathullah/voter-shield/internal/voter"
)

// WriteCSV writes records to path atomically, as CSV, with Columns as the
// header row. CSV is written with the standard library: it is a trivial
// boundary format with no third-party library in the example pack or
// ecosystem materially improving on encoding/csv for this use (documented
// in DESIGN.md).
func WriteCSV(records []voter.Record, path string) error {
	return atomicWrite(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(Columns); err != nil {
			return fmt.Errorf("writer: writing csv header: %w", err)
		}
		for _, r := range records {
			if err := w.Write(Row(r)); err != nil {
				return fmt.Errorf("writer: writing csv row: %w", err)
			}
		}
		w.Flush()
		return w.Error()
	})
}
