package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ashathullah/voter-shield/internal/config"
	"github.com/ashathullah/voter-shield/internal/crop"
	"github.com/ashathullah/voter-shield/internal/extract"
	"github.com/ashathullah/voter-shield/internal/langroute"
	"github.com/ashathullah/voter-shield/internal/metrics"
	"github.com/ashathullah/voter-shield/internal/ocr"
	"github.com/ashathullah/voter-shield/internal/quality"
	"github.com/ashathullah/voter-shield/internal/render"
	"github.com/ashathullah/voter-shield/internal/runstate"
	"github.com/ashathullah/voter-shield/internal/serial"
	"github.com/ashathullah/voter-shield/internal/summary"
	"github.com/ashathullah/voter-shield/internal/voter"
	"github.com/ashathullah/voter-shield/internal/workerpool"
	"github.com/ashathullah/voter-shield/internal/writer"
)

// Orchestrator wires every stage together and drives one document at a
// time through them (spec §5: pdf-level concurrency is explicitly out of
// scope, matching the source's own "--pdf-workers > 1 is not implemented
// yet" warning).
type Orchestrator struct {
	Cfg             *config.Config
	Cropper         *crop.Cropper
	Renderer        *render.Renderer
	OCREngine       *ocr.Engine
	RunState        *runstate.RunState
	RunID           string
	PipelineVersion string
}

// ProcessDocument runs the full convert->crop->ocr->extract->done sequence
// for one PDF and returns its outcome plus any records it extracted
// (empty on failure).
func (o *Orchestrator) ProcessDocument(ctx context.Context, pdfPath string) (Outcome, []voter.Record) {
	pdfName := filepath.Base(pdfPath)
	docID := strings.TrimSuffix(pdfName, filepath.Ext(pdfName))
	startedAt := time.Now().UTC()

	records, report, err := o.runStages(ctx, pdfPath, docID, pdfName, startedAt)
	if err != nil {
		_ = o.RunState.SetMetrics(docID, pdfName, nil, nil, nil, "", err.Error())
		_ = o.RunState.SetStatus(docID, pdfName, voter.StatusFailed, "error")
		metrics.DocumentsProcessedTotal.WithLabelValues("failed").Inc()
		return Outcome{Kind: KindDocumentFailure, DocID: docID, Err: err}, nil
	}

	var totalExpected *int
	if report.Summary.TotalVotersExpected != nil {
		totalExpected = report.Summary.TotalVotersExpected
	}
	var ratio *float64
	extractedCount := len(records)
	if totalExpected != nil && *totalExpected > 0 {
		r := float64(extractedCount) / float64(*totalExpected)
		ratio = &r
	}
	_ = o.RunState.SetMetrics(docID, pdfName, &extractedCount, totalExpected, ratio, "", "")

	reportPath := filepath.Join(o.Cfg.Dirs.CSV, docID+".report.json")
	if err := writer.WriteReport(report, reportPath); err != nil {
		_ = o.RunState.SetStatus(docID, pdfName, voter.StatusFailed, "error")
		metrics.DocumentsProcessedTotal.WithLabelValues("failed").Inc()
		return Outcome{Kind: KindDocumentFailure, DocID: docID, Err: err}, nil
	}

	if o.Cfg.Strict && totalExpected != nil && extractedCount != *totalExpected {
		_ = o.RunState.SetStatus(docID, pdfName, voter.StatusIncomplete, "done")
		metrics.DocumentsProcessedTotal.WithLabelValues("incomplete").Inc()
		return Outcome{
			Kind: KindIntegrityWarning, DocID: docID, StrictMismatch: true,
			Info: fmt.Sprintf("extracted %d voters, expected %d", extractedCount, *totalExpected),
		}, records
	}

	_ = o.RunState.SetStatus(docID, pdfName, voter.StatusCompleted, "done")
	metrics.DocumentsProcessedTotal.WithLabelValues("completed").Inc()

	if len(report.Integrity.MarkerSplitsFailedPages) > 0 {
		return Outcome{Kind: KindIntegrityWarning, DocID: docID, Info: "low-split pages present"}, records
	}
	return Outcome{Kind: KindOK, DocID: docID}, records
}

func (o *Orchestrator) runStages(ctx context.Context, pdfPath, docID, pdfName string, startedAt time.Time) ([]voter.Record, writer.Report, error) {
	cfg := o.Cfg

	jpgDir := filepath.Join(cfg.Dirs.JPG, docID)
	cropsDir := filepath.Join(cfg.Dirs.Crops, docID)
	ocrDir := filepath.Join(cfg.Dirs.OCR, docID)
	for _, d := range []string{jpgDir, cropsDir, ocrDir} {
		if err := os.MkdirAll(d, 0o750); err != nil {
			return nil, writer.Report{}, fmt.Errorf("driver: creating %s: %w", d, err)
		}
	}

	lang := langroute.Classify(pdfName)

	if err := o.RunState.SetStatus(docID, pdfName, voter.StatusInProgress, "convert"); err != nil {
		return nil, writer.Report{}, err
	}
	renderStart := time.Now()
	renderResult, err := o.Renderer.RenderDocument(pdfPath, docID, lang, jpgDir)
	metrics.StageDuration.WithLabelValues("render").Observe(time.Since(renderStart).Seconds())
	if err != nil {
		return nil, writer.Report{}, fmt.Errorf("render: %w", err)
	}
	metrics.PagesRenderedTotal.Add(float64(renderResult.PagesTotal))

	if err := o.RunState.SetStatus(docID, pdfName, voter.StatusInProgress, "crop"); err != nil {
		return nil, writer.Report{}, err
	}
	sortedVoterJPEGs := append([]string(nil), renderResult.VoterJPEGs...)
	crop.SortPageFiles(sortedVoterJPEGs)
	streetPaths := make([]string, len(sortedVoterJPEGs))
	cropStart := time.Now()
	err = workerpool.Run(ctx, cfg.Crop.Workers, sortedVoterJPEGs, func(_ context.Context, i int, pagePath string) error {
		result, err := o.Cropper.CropPage(pagePath, docID, i+1, cropsDir)
		if err != nil {
			return err
		}
		streetPaths[i] = result.StreetPath
		return nil
	})
	metrics.StageDuration.WithLabelValues("crop").Observe(time.Since(cropStart).Seconds())
	if err != nil {
		return nil, writer.Report{}, fmt.Errorf("crop: %w", err)
	}

	if err := o.RunState.SetStatus(docID, pdfName, voter.StatusInProgress, "ocr"); err != nil {
		return nil, writer.Report{}, err
	}
	stackedCrops, err := filepath.Glob(filepath.Join(cropsDir, "*_stacked_crops.jpg"))
	if err != nil {
		return nil, writer.Report{}, fmt.Errorf("driver: globbing stacked crops: %w", err)
	}
	jobs := ocr.EnumerateJobs(stackedCrops, streetPaths, renderResult.CoverJPEGs, renderResult.SummaryJPEG, ocrDir)
	runner := ocr.NewRunner(o.OCREngine, cfg.OCR)
	ocrStart := time.Now()
	err = runner.Run(ctx, jobs)
	metrics.StageDuration.WithLabelValues("ocr").Observe(time.Since(ocrStart).Seconds())
	if err != nil {
		return nil, writer.Report{}, fmt.Errorf("ocr: %w", err)
	}

	if err := o.RunState.SetStatus(docID, pdfName, voter.StatusInProgress, "extract"); err != nil {
		return nil, writer.Report{}, err
	}

	extractStart := time.Now()
	records, integrity, err := o.extractAll(docID, cropsDir, ocrDir, lang, cfg.OCR.MinExpectedSplits)
	metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(extractStart).Seconds())
	if err != nil {
		return nil, writer.Report{}, fmt.Errorf("extract: %w", err)
	}

	summaryTotals := voter.SummaryTotals{}
	summaryTxtPath := filepath.Join(ocrDir, docID+"_summary_ocr.txt")
	if data, err := os.ReadFile(summaryTxtPath); err == nil {
		summaryTotals = summary.Parse(string(data))
	}

	records = serial.Assign(records)
	quality.Annotate(records)

	if err := writer.WriteDocument(records, cfg.Dirs.CSV, docID, cfg.Writer.Format); err != nil {
		return nil, writer.Report{}, err
	}

	report := writer.Report{
		RunID:           o.RunID,
		PipelineVersion: o.PipelineVersion,
		StartedAtUTC:    startedAt,
		FinishedAtUTC:   time.Now().UTC(),
		SourcePDFName:   pdfName,
		SourcePDFPath:   pdfPath,
		DocID:           docID,
		DPI:             cfg.Render.DPI,
		OCRWorkers:      cfg.OCR.Workers,
		PagesTotal:      renderResult.PagesTotal,
		ExtractedVoters: len(records),
		Summary:         summaryTotals,
		Integrity:       integrity,
	}

	return records, report, nil
}

// stackedOCRFile pairs a discovered stacked-OCR text file with the
// document id/page number ocr.ParseStackedFilename recovered from its
// name.
type stackedOCRFile struct {
	info ocr.StackedFilenameInfo
	path string
}

func (o *Orchestrator) extractAll(docID, cropsDir, ocrDir string, lang voter.Language, minSplits int) ([]voter.Record, writer.Integrity, error) {
	matches, err := filepath.Glob(filepath.Join(ocrDir, "*_stacked_ocr.txt"))
	if err != nil {
		return nil, writer.Integrity{}, fmt.Errorf("driver: globbing stacked OCR text in %s: %w", ocrDir, err)
	}

	var pages []stackedOCRFile
	for _, m := range matches {
		info, ok := ocr.ParseStackedFilename(filepath.Base(m))
		if !ok || info.DocID != docID {
			continue
		}
		pages = append(pages, stackedOCRFile{info: info, path: m})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].info.PageNo < pages[j].info.PageNo })

	var (
		records     []voter.Record
		splitCounts []int
		lowSplit    []writer.LowSplitPage
	)

	for _, pg := range pages {
		pageNo := pg.info.PageNo
		stackedText, err := os.ReadFile(pg.path)
		if err != nil {
			continue // OCR produced nothing readable for this page; treat as zero records, not fatal.
		}
		streetTxtPath := filepath.Join(ocrDir, fmt.Sprintf("%s_page_%02d_street.txt", docID, pageNo))
		headerText, _ := os.ReadFile(streetTxtPath)

		sourceImage := fmt.Sprintf("%s_page_%02d_stacked_crops.jpg", docID, pageNo)
		result := extract.ExtractPage(string(stackedText), string(headerText), docID, pageNo, sourceImage, lang, minSplits)

		records = append(records, result.Records...)
		splitCounts = append(splitCounts, len(result.Split.Chunks))

		if result.Split.LowSplit {
			metrics.MarkerSplitsLowCount.Inc()
			page := writer.LowSplitPage{PageNo: pageNo, SourceImage: sourceImage, MarkerSplits: len(result.Split.Chunks)}
			lowSplit = append(lowSplit, page)
			if err := o.snapshotDebug(docID, pageNo, cropsDir, string(stackedText), page); err != nil {
				return nil, writer.Integrity{}, err
			}
		}
	}

	integrity := writer.Integrity{MarkerSplitsFailedPages: lowSplit}
	if len(splitCounts) > 0 {
		total := sumInts(splitCounts)
		minVal := minInt(splitCounts)
		integrity.MarkerSplitsTotal = &total
		integrity.MarkerSplitsMinPage = &minVal
	}

	return records, integrity, nil
}

// snapshotDebug copies a low-split page's stacked image, OCR text, and an
// integrity JSON into runs/<run_id>/debug/<doc_id>/, per spec §7's
// integrity-warning handling.
func (o *Orchestrator) snapshotDebug(docID string, pageNo int, cropsDir, ocrText string, page writer.LowSplitPage) error {
	debugDir := filepath.Join(o.Cfg.RunState.StateDir, o.RunID, "debug", docID)
	if err := os.MkdirAll(debugDir, 0o750); err != nil {
		return fmt.Errorf("driver: creating debug dir %s: %w", debugDir, err)
	}

	base := fmt.Sprintf("%s_page_%02d", docID, pageNo)
	stackedSrc := filepath.Join(cropsDir, base+"_stacked_crops.jpg")
	if data, err := os.ReadFile(stackedSrc); err == nil {
		_ = os.WriteFile(filepath.Join(debugDir, base+"_stacked_crops.jpg"), data, 0o600)
	}
	_ = os.WriteFile(filepath.Join(debugDir, base+"_ocr.txt"), []byte(ocrText), 0o600)

	integrityJSON, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("driver: marshaling integrity snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(debugDir, base+"_integrity.json"), integrityJSON, 0o600); err != nil {
		return fmt.Errorf("driver: writing integrity snapshot: %w", err)
	}
	return nil
}

func sumInts(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
