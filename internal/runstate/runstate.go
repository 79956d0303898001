// Package runstate implements the resumable run ledger (spec §4.9):
// progress.csv (a full snapshot of every document's lifecycle state) and
// events.jsonl (an append-only audit log), with resume semantics that
// demote any in_progress document back to pending. Grounded directly on
// run_state.py's RunState/PdfState, except progress.csv is rewritten
// atomically here (temp file + rename, like internal/writer) rather than
// the source's in-place open("w") — resuming mid-crash must never observe
// a half-written snapshot.
package runstate

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ashathullah/voter-shield/internal/voter"
)

var snapshotColumns = []string{
	"pdf_stem", "pdf_name", "status", "stage",
	"started_at_utc", "finished_at_utc",
	"extracted_voters", "total_voters_expected", "completeness_ratio",
	"warnings", "error",
}

// RunState is the in-memory ledger for one run, backed by progress.csv
// and events.jsonl under <stateDir>/<runID>.
type RunState struct {
	RunID string
	dir   string

	mu    sync.Mutex
	state map[string]*voter.PdfState
	order []string // first-seen order of doc IDs; the snapshot itself is written sorted by pdf_stem
}

// New creates (or attaches to) the run directory for runID under
// rootDir, matching RunState.__post_init__'s mkdir.
func New(rootDir, runID string) (*RunState, error) {
	dir := filepath.Join(rootDir, runID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("runstate: creating %s: %w", dir, err)
	}
	return &RunState{RunID: runID, dir: dir, state: make(map[string]*voter.PdfState)}, nil
}

// Load attaches to an existing run directory and reads progress.csv if
// present, demoting any in_progress document to pending (spec §4.9
// resume semantics). If progress.csv does not exist, Load behaves like
// New.
func Load(rootDir, runID string) (*RunState, error) {
	rs, err := New(rootDir, runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(rs.progressPath())
	if os.IsNotExist(err) {
		return rs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("runstate: opening %s: %w", rs.progressPath(), err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("runstate: reading %s: %w", rs.progressPath(), err)
	}
	if len(rows) == 0 {
		return rs, nil
	}

	header := rows[0]
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}

	for _, row := range rows[1:] {
		get := func(col string) string {
			if i, ok := idx[col]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}

		stem := get("pdf_stem")
		status := voter.Status(get("status"))
		if status == "" {
			status = voter.StatusPending
		}
		if status == voter.StatusInProgress {
			status = voter.StatusPending
		}

		pdfName := get("pdf_name")
		if pdfName == "" {
			pdfName = stem
		}

		rs.state[stem] = &voter.PdfState{
			DocID:               stem,
			PdfName:             pdfName,
			Status:              status,
			Stage:               get("stage"),
			StartedAtUTC:        parseTimeOrNil(get("started_at_utc")),
			FinishedAtUTC:       parseTimeOrNil(get("finished_at_utc")),
			ExtractedVoters:     parseIntOrNil(get("extracted_voters")),
			TotalVotersExpected: parseIntOrNil(get("total_voters_expected")),
			CompletenessRatio:   parseFloatOrNil(get("completeness_ratio")),
			Warnings:            get("warnings"),
			Error:               get("error"),
		}
		rs.order = append(rs.order, stem)
	}

	return rs, nil
}

// Get returns a copy of the state for docID, and whether it is known
// (useful for resume's skip-if-completed-and-output-exists check).
func (rs *RunState) Get(docID string) (voter.PdfState, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	s, ok := rs.state[docID]
	if !ok {
		return voter.PdfState{}, false
	}
	return *s, true
}

func (rs *RunState) upsert(docID, pdfName string) *voter.PdfState {
	s, ok := rs.state[docID]
	if !ok {
		s = &voter.PdfState{DocID: docID, PdfName: pdfName, Status: voter.StatusPending}
		rs.state[docID] = s
		rs.order = append(rs.order, docID)
	}
	return s
}

// SetStatus transitions docID to status/stage, stamping started/finished
// timestamps the same way set_status does, logs an event, and rewrites
// the snapshot.
func (rs *RunState) SetStatus(docID, pdfName string, status voter.Status, stage string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	s := rs.upsert(docID, pdfName)
	now := time.Now().UTC()
	if status == voter.StatusInProgress && s.StartedAtUTC == nil {
		s.StartedAtUTC = &now
	}
	if status == voter.StatusCompleted || status == voter.StatusFailed || status == voter.StatusIncomplete {
		s.FinishedAtUTC = &now
	}
	s.Status = status
	if stage != "" {
		s.Stage = stage
	}

	if err := rs.logEvent("status", docID, map[string]any{"status": string(status), "stage": stage}); err != nil {
		return err
	}
	return rs.writeSnapshotLocked()
}

// SetMetrics records extracted/expected voter counts, completeness, and
// any warnings/error for docID, logs an event, and rewrites the snapshot.
func (rs *RunState) SetMetrics(docID, pdfName string, extractedVoters, totalExpected *int, completeness *float64, warnings, errText string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	s := rs.upsert(docID, pdfName)
	if extractedVoters != nil {
		s.ExtractedVoters = extractedVoters
	}
	if totalExpected != nil {
		s.TotalVotersExpected = totalExpected
	}
	if completeness != nil {
		s.CompletenessRatio = completeness
	}
	if warnings != "" {
		s.Warnings = warnings
	}
	if errText != "" {
		s.Error = errText
	}

	if err := rs.logEvent("metrics", docID, map[string]any{
		"extracted_voters": extractedVoters, "total_voters_expected": totalExpected,
		"completeness_ratio": completeness, "warnings": warnings, "error": errText,
	}); err != nil {
		return err
	}
	return rs.writeSnapshotLocked()
}

// ShouldSkip reports whether docID should be skipped on resume: it was
// previously completed and its output artifact still exists on disk
// (spec §4.9 resume semantics; failed/incomplete/pending documents are
// always retried).
func (rs *RunState) ShouldSkip(docID string, outputExists bool) bool {
	s, ok := rs.Get(docID)
	return ok && s.Status == voter.StatusCompleted && outputExists
}

func (rs *RunState) progressPath() string { return filepath.Join(rs.dir, "progress.csv") }
func (rs *RunState) eventsPath() string   { return filepath.Join(rs.dir, "events.jsonl") }

func (rs *RunState) logEvent(eventType, docID string, fields map[string]any) error {
	event := map[string]any{
		"ts_utc":   time.Now().UTC().Format(time.RFC3339Nano),
		"event":    eventType,
		"pdf_stem": docID,
	}
	for k, v := range fields {
		event[k] = v
	}

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("runstate: marshaling event: %w", err)
	}

	f, err := os.OpenFile(rs.eventsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec
	if err != nil {
		return fmt.Errorf("runstate: opening %s: %w", rs.eventsPath(), err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("runstate: appending event: %w", err)
	}
	return nil
}

func (rs *RunState) writeSnapshotLocked() error {
	stems := make([]string, 0, len(rs.state))
	for stem := range rs.state {
		stems = append(stems, stem)
	}
	sort.Strings(stems)

	dir := filepath.Dir(rs.progressPath())
	tmp, err := os.CreateTemp(dir, "progress.*.tmp")
	if err != nil {
		return fmt.Errorf("runstate: creating temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(snapshotColumns)
	for _, stem := range stems {
		if writeErr != nil {
			break
		}
		s := rs.state[stem]
		writeErr = w.Write([]string{
			stem, s.PdfName, string(s.Status), s.Stage,
			timeOrEmpty(s.StartedAtUTC), timeOrEmpty(s.FinishedAtUTC),
			intOrEmpty(s.ExtractedVoters), intOrEmpty(s.TotalVotersExpected), floatOrEmpty(s.CompletenessRatio),
			s.Warnings, s.Error,
		})
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if writeErr != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("runstate: writing snapshot: %w", writeErr)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("runstate: closing snapshot temp file: %w", err)
	}

	if err := os.Rename(tmpPath, rs.progressPath()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("runstate: renaming snapshot into place: %w", err)
	}
	return nil
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func parseTimeOrNil(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseIntOrNil(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloatOrNil(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
