package driver

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ashathullah/voter-shield/internal/runstate"
	"github.com/ashathullah/voter-shield/internal/voter"
	"github.com/ashathullah/voter-shield/internal/writer"
)

// RunRegression bypasses the whole render/crop/ocr/extract pipeline and
// writes a known-good fixture CSV straight through, mirroring the source's
// --regression flag (used in CI where tesseract is not installed): a
// per-document output file, a per-document report.json, an optional
// combined output, and a completed run-state entry, exactly as if the
// fixture's single document had gone through the real pipeline. The
// fixture must carry writer.Columns as its header; its filename stem
// (without extension) becomes the document id.
func RunRegression(fixturePath, outDir, format string, noCombined bool, runState *runstate.RunState, runID, pipelineVersion string) error {
	records, err := readFixture(fixturePath)
	if err != nil {
		return fmt.Errorf("driver: reading regression fixture: %w", err)
	}

	base := filepath.Base(fixturePath)
	docID := strings.TrimSuffix(base, filepath.Ext(base))
	pdfName := docID + ".pdf"
	startedAt := time.Now().UTC()

	if err := runState.SetStatus(docID, pdfName, voter.StatusInProgress, "fixture"); err != nil {
		return fmt.Errorf("driver: marking regression document in progress: %w", err)
	}

	if err := writer.WriteDocument(records, outDir, docID, format); err != nil {
		return fmt.Errorf("driver: writing regression per-document output: %w", err)
	}
	if !noCombined {
		if err := writer.WriteCombined(records, outDir, format); err != nil {
			return fmt.Errorf("driver: writing regression combined output: %w", err)
		}
	}

	extractedCount := len(records)
	report := writer.Report{
		RunID:           runID,
		PipelineVersion: pipelineVersion,
		StartedAtUTC:    startedAt,
		FinishedAtUTC:   time.Now().UTC(),
		SourcePDFName:   pdfName,
		SourcePDFPath:   fixturePath,
		DocID:           docID,
		ExtractedVoters: extractedCount,
	}
	reportPath := filepath.Join(outDir, docID+".report.json")
	if err := writer.WriteReport(report, reportPath); err != nil {
		_ = runState.SetStatus(docID, pdfName, voter.StatusFailed, "error")
		return fmt.Errorf("driver: writing regression report: %w", err)
	}

	if err := runState.SetMetrics(docID, pdfName, &extractedCount, nil, nil, "", ""); err != nil {
		return fmt.Errorf("driver: recording regression metrics: %w", err)
	}
	if err := runState.SetStatus(docID, pdfName, voter.StatusCompleted, "done"); err != nil {
		return fmt.Errorf("driver: marking regression document completed: %w", err)
	}
	return nil
}

func readFixture(path string) ([]voter.Record, error) {
	f, err := os.Open(path) //nolint:gosec // path is an operator-supplied CLI flag
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	records := make([]voter.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowToRecord(row, index))
	}
	return records, nil
}

func rowToRecord(row []string, index map[string]int) voter.Record {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rec := voter.Record{
		Assembly:     get("assembly"),
		Street:       get("street"),
		EPICID:       get("epic_id"),
		Name:         get("name"),
		FatherName:   get("father_name"),
		MotherName:   get("mother_name"),
		HusbandName:  get("husband_name"),
		OtherName:    get("other_name"),
		HouseNo:      get("house_no"),
		Gender:       get("gender"),
		FlagReasons:  get("FLAG_REASONS"),
		Explanation1: get("EXPLANATION_1"),
	}
	if n, err := strconv.Atoi(get("part_no")); err == nil {
		rec.PartNo = &n
	}
	if n, err := strconv.Atoi(get("serial_no")); err == nil {
		rec.SerialNo = n
	}
	if n, err := strconv.Atoi(get("age")); err == nil {
		rec.Age = &n
	}
	if n, err := strconv.Atoi(get("TOTAL_FLAGS")); err == nil {
		rec.TotalFlags = n
	}
	return rec
}
