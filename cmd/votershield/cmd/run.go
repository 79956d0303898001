package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ashathullah/voter-shield/internal/config"
	"github.com/ashathullah/voter-shield/internal/crop"
	"github.com/ashathullah/voter-shield/internal/driver"
	"github.com/ashathullah/voter-shield/internal/fetch"
	"github.com/ashathullah/voter-shield/internal/langroute"
	"github.com/ashathullah/voter-shield/internal/metrics"
	"github.com/ashathullah/voter-shield/internal/objectstore"
	"github.com/ashathullah/voter-shield/internal/ocr"
	"github.com/ashathullah/voter-shield/internal/render"
	"github.com/ashathullah/voter-shield/internal/runstate"
)

// preconditionExitCode is the source's sys.exit(2) for a fatal run-level
// precondition that was never met (spec §6's exit-code table): the OCR
// engine binary is missing, or a required tesseract language pack is not
// installed. Both are checked once, before any document is rendered or
// cropped, so a missing precondition never surfaces as a per-document
// failure after partial work has already happened.
const preconditionExitCode = 2

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the voter-roll extraction pipeline over a directory of PDFs",
	Long: `Renders every PDF under --pdf-dir (or fetched from --s3-input), crops and
OCRs its voter-grid pages, extracts structured records, and writes
per-document and combined output under --csv-dir.`,
	SilenceUsage: true,
	RunE:         runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("pdf-dir", "pdf", "directory containing input PDFs")
	runCmd.Flags().Bool("delete-old", false, "delete previously rendered/cropped/ocr artifacts before running")
	runCmd.Flags().Bool("regression", false, "bypass the OCR pipeline and write a fixture CSV through unchanged")
	runCmd.Flags().String("regression-fixture", "", "fixture CSV path used by --regression")
	runCmd.Flags().Int("pdf-workers", 1, "number of PDFs to process concurrently (must be 1; not implemented)")
	runCmd.Flags().Int("ocr-workers", 2, "number of concurrent tesseract invocations")
	runCmd.Flags().Bool("resume", false, "skip documents already marked completed in the run-state ledger")
	runCmd.Flags().Bool("strict", false, "fail the run if any document's extracted voter count does not match its summary total")
	runCmd.Flags().String("state-dir", "runs", "root directory for the run-state ledger")
	runCmd.Flags().String("run-id", "", "run identifier (default: a timestamp + random suffix)")
	runCmd.Flags().Bool("no-combined", false, "skip writing the combined final_voter_data file")
	runCmd.Flags().String("output-format", "xlsx", "per-document and combined output format (csv, xlsx)")
	runCmd.Flags().String("s3-input", "", "comma-separated list of s3:// prefixes to fetch input PDFs from")
	runCmd.Flags().String("s3-output", "", "s3:// prefix to upload the CSV output directory to")

	for _, name := range []string{
		"pdf-dir", "delete-old", "regression", "regression-fixture", "pdf-workers", "ocr-workers",
		"resume", "strict", "state-dir", "run-id", "no-combined", "output-format", "s3-input", "s3-output",
	} {
		key := strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, runCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("cmd: binding --%s: %v", name, err))
		}
	}
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader()
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = loader.LoadWithFile(cfgFile)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("cmd: loading configuration: %w", err)
	}
	setupLogging(cfg)

	pdfWorkers := viper.GetInt("pdf_workers")
	if pdfWorkers != 1 {
		slog.Warn("--pdf-workers > 1 is not implemented; processing documents sequentially", "requested", pdfWorkers)
	}

	resume := viper.GetBool("resume")
	runID := viper.GetString("run_id")
	if resume && runID == "" {
		return fmt.Errorf("cmd: --resume requires --run-id")
	}
	if runID == "" {
		runID = fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102_150405"), uuid.NewString()[:8])
	}

	pdfDir := viper.GetString("pdf_dir")
	stateDir := viper.GetString("state_dir")
	outputFormat := viper.GetString("output_format")
	cfg.Writer.Format = outputFormat
	cfg.Writer.NoCombined = viper.GetBool("no_combined")
	cfg.OCR.Workers = viper.GetInt("ocr_workers")
	cfg.Strict = viper.GetBool("strict")
	cfg.RunState.StateDir = stateDir
	cfg.RunState.RunID = runID

	if viper.GetBool("regression") {
		fixture := viper.GetString("regression_fixture")
		if fixture == "" {
			return fmt.Errorf("cmd: --regression requires --regression-fixture")
		}
		slog.Info("running in regression mode", "fixture", fixture)

		runState, err := openRunState(resume, stateDir, runID)
		if err != nil {
			return fmt.Errorf("cmd: initializing run state: %w", err)
		}
		if err := driver.RunRegression(fixture, cfg.Dirs.CSV, cfg.Writer.Format, cfg.Writer.NoCombined, runState, runID, pipelineVersion()); err != nil {
			return fmt.Errorf("cmd: %w", err)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store objectstore.Store
	s3Input := viper.GetString("s3_input")
	s3Output := viper.GetString("s3_output")
	if s3Input != "" || s3Output != "" {
		s3Store, err := objectstore.NewS3Store(ctx)
		if err != nil {
			return fmt.Errorf("cmd: %w", err)
		}
		store = s3Store
		cfg.S3.OutputURI = s3Output
	}

	if s3Input != "" {
		uris := strings.Split(s3Input, ",")
		if err := fetch.New(store).Fetch(ctx, uris, pdfDir); err != nil {
			return fmt.Errorf("cmd: fetching input PDFs: %w", err)
		}
	}

	if viper.GetBool("delete_old") {
		for _, dir := range []string{cfg.Dirs.JPG, cfg.Dirs.Crops, cfg.Dirs.OCR} {
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("cmd: deleting %s: %w", dir, err)
			}
		}
	}

	pdfPaths, err := listPDFs(pdfDir)
	if err != nil {
		return fmt.Errorf("cmd: listing input PDFs: %w", err)
	}
	if len(pdfPaths) == 0 {
		return fmt.Errorf("cmd: no PDFs found in %s", pdfDir)
	}

	ocrEngine, err := ocr.NewEngine(cfg.OCR)
	if err != nil {
		if errors.Is(err, ocr.ErrTesseractNotFound) {
			slog.Error("OCR engine precondition failed", "error", err)
			os.Exit(preconditionExitCode)
		}
		return fmt.Errorf("cmd: %w", err)
	}

	if err := ocrEngine.EnsureLanguages(ctx, requiredTesseractLangs(pdfPaths)); err != nil {
		if errors.Is(err, ocr.ErrMissingLanguageData) {
			slog.Error("OCR language-pack precondition failed", "error", err)
			os.Exit(preconditionExitCode)
		}
		return fmt.Errorf("cmd: %w", err)
	}

	cropper, err := crop.New(cfg.Crop)
	if err != nil {
		return fmt.Errorf("cmd: %w", err)
	}

	runState, err := openRunState(resume, stateDir, runID)
	if err != nil {
		return fmt.Errorf("cmd: initializing run state: %w", err)
	}

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics)
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	orchestrator := &driver.Orchestrator{
		Cfg:             cfg,
		Cropper:         cropper,
		Renderer:        render.New(cfg.Render),
		OCREngine:       ocrEngine,
		RunState:        runState,
		RunID:           runID,
		PipelineVersion: pipelineVersion(),
	}

	slog.Info("pipeline started", "run_id", runID, "ocr_workers", cfg.OCR.Workers, "documents", len(pdfPaths))

	summary, err := orchestrator.Run(ctx, pdfPaths, resume, store)
	if err != nil {
		return fmt.Errorf("cmd: %w", err)
	}

	if code := summary.ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}

// requiredTesseractLangs unions the tesseract language codes every
// discovered PDF will need, so the language-pack precondition can be
// checked once up front instead of per document.
func requiredTesseractLangs(pdfPaths []string) []string {
	set := make(map[string]bool)
	for _, path := range pdfPaths {
		for _, l := range langroute.TesseractLangs(langroute.Classify(filepath.Base(path))) {
			set[l] = true
		}
	}
	langs := make([]string, 0, len(set))
	for l := range set {
		langs = append(langs, l)
	}
	return langs
}

// openRunState attaches to the run-state ledger for runID under stateDir,
// resuming a prior snapshot when resume is set. Shared by the regression
// path and the real pipeline so both mark document lifecycle the same way.
func openRunState(resume bool, stateDir, runID string) (*runstate.RunState, error) {
	if resume {
		return runstate.Load(stateDir, runID)
	}
	return runstate.New(stateDir, runID)
}

func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
