package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ashathullah/voter-shield/internal/config"
	"github.com/ashathullah/voter-shield/internal/metrics"
	"github.com/ashathullah/voter-shield/internal/workerpool"
)

// Runner executes a document's OCR jobs with bounded concurrency.
type Runner struct {
	Engine *Engine
	Cfg    config.OCRConfig
}

// NewRunner wires an Engine and OCRConfig into a Runner.
func NewRunner(engine *Engine, cfg config.OCRConfig) *Runner {
	return &Runner{Engine: engine, Cfg: cfg}
}

// Run executes every job, writing each result to its OutputPath, bounded
// by Cfg.Workers concurrent tesseract invocations (spec §4.4). Required
// language data is verified once, up front, for the whole run (spec
// §4.10/§7) — not here, so a missing language pack is never discovered
// only after some documents have already been rendered and cropped.
func (r *Runner) Run(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}

	workers := r.Cfg.Workers
	if workers < 1 {
		workers = 1
	}

	err := workerpool.Run(ctx, workers, jobs, func(ctx context.Context, _ int, job Job) error {
		text, err := r.Engine.RecognizeFile(ctx, job.ImagePath, job.Lang, job.PSMFlags)
		if err != nil {
			metrics.OCRJobsTotal.WithLabelValues("failed").Inc()
			return fmt.Errorf("ocr: recognizing %s: %w", job.ImagePath, err)
		}
		if err := os.WriteFile(job.OutputPath, []byte(text), 0o600); err != nil {
			metrics.OCRJobsTotal.WithLabelValues("failed").Inc()
			return fmt.Errorf("ocr: writing %s: %w", job.OutputPath, err)
		}
		metrics.OCRJobsTotal.WithLabelValues("ok").Inc()
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("ocr run complete", "jobs", len(jobs))
	return nil
}
