package writer

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ashathullah/voter-shield/internal/voter"
)

const sheetName = "voters"

// WriteXLSX writes records to path atomically, as an XLSX workbook with a
// single "voters" sheet, Columns as the header row.
func WriteXLSX(records []voter.Record, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("writer: renaming sheet: %w", err)
	}

	for col, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("writer: resolving header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("writer: writing header cell %s: %w", cell, err)
		}
	}

	for rowIdx, r := range records {
		row := Row(r)
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("writer: resolving data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("writer: writing data cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("writer: rendering xlsx: %w", err)
	}

	return atomicWrite(path, func(tmp *os.File) error {
		_, err := tmp.Write(buf.Bytes())
		return err
	})
}
