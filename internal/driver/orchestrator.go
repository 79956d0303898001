package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ashathullah/voter-shield/internal/fetch"
	"github.com/ashathullah/voter-shield/internal/objectstore"
	"github.com/ashathullah/voter-shield/internal/voter"
	"github.com/ashathullah/voter-shield/internal/writer"
)

// RunSummary reports the outcome of a full run across every document.
type RunSummary struct {
	Outcomes       []Outcome
	StrictFailures []string // doc IDs that failed the strict voter-count check
}

// ExitCode mirrors the source's final sys.exit(1) on strict-mode failure:
// 2 if any document hit a precondition or document-level failure, 1 if
// strict mode is set and any document had a count mismatch, 0 otherwise.
func (s RunSummary) ExitCode() int {
	for _, o := range s.Outcomes {
		if o.Kind == KindPreconditionalFailure || o.Kind == KindDocumentFailure {
			return 2
		}
	}
	if len(s.StrictFailures) > 0 {
		return 1
	}
	return 0
}

// Run processes every PDF in pdfPaths in a fixed, sequential order (spec
// §5: concurrent multi-document processing is explicitly out of scope),
// skipping documents the run-state ledger already marked completed when
// resume is enabled, accumulating records for the combined output, and
// optionally uploading the CSV directory to an object-store destination.
func (o *Orchestrator) Run(ctx context.Context, pdfPaths []string, resume bool, store objectstore.Store) (RunSummary, error) {
	sorted := append([]string(nil), pdfPaths...)
	sort.Strings(sorted)

	var (
		summary         RunSummary
		combinedRecords []voter.Record
	)

	for _, pdfPath := range sorted {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		pdfName := filepath.Base(pdfPath)
		docID := strings.TrimSuffix(pdfName, filepath.Ext(pdfName))

		if resume {
			outputPath := filepath.Join(o.Cfg.Dirs.CSV, docID+docExtension(o.Cfg.Writer.Format))
			if o.RunState.ShouldSkip(docID, fileExists(outputPath)) {
				slog.Info("skipping already-completed document", "doc_id", docID)
				summary.Outcomes = append(summary.Outcomes, Outcome{Kind: KindOK, DocID: docID})
				continue
			}
		}

		outcome, records := o.ProcessDocument(ctx, pdfPath)
		summary.Outcomes = append(summary.Outcomes, outcome)

		if outcome.Kind == KindDocumentFailure {
			slog.Error("document failed", "doc_id", docID, "error", outcome.Err)
			continue
		}
		if outcome.StrictMismatch {
			summary.StrictFailures = append(summary.StrictFailures, docID)
		}

		if !o.Cfg.Writer.NoCombined {
			combinedRecords = append(combinedRecords, records...)
		}
	}

	if !o.Cfg.Writer.NoCombined {
		if err := writer.WriteCombined(combinedRecords, o.Cfg.Dirs.CSV, o.Cfg.Writer.Format); err != nil {
			return summary, fmt.Errorf("driver: writing combined output: %w", err)
		}
	}

	if store != nil && o.Cfg.S3.OutputURI != "" {
		if err := fetch.UploadDirectory(ctx, store, o.Cfg.Dirs.CSV, o.Cfg.S3.OutputURI); err != nil {
			slog.Error("uploading output directory failed", "error", err)
		}
	}

	return summary, nil
}

func docExtension(format string) string {
	if format == "xlsx" {
		return ".xlsx"
	}
	return ".csv"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
