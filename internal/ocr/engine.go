// Package ocr implements the OCR Runner stage (spec §4.4): shelling out to
// an external Tesseract binary for every crop/header/cover/summary image
// produced by the renderer and cropper, mirroring the source's
// subprocess-based pytesseract usage rather than linking an OCR engine
// into the binary.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ashathullah/voter-shield/internal/config"
)

// ErrTesseractNotFound is a fatal precondition error: no usable tesseract
// binary could be located.
var ErrTesseractNotFound = errors.New("ocr: tesseract binary not found")

// ErrMissingLanguageData is a fatal precondition error: tesseract is
// present but a required language pack is not installed.
var ErrMissingLanguageData = errors.New("ocr: required tesseract language data missing")

// Engine wraps the tesseract command-line binary. Its configuration
// (binary path, tessdata dir) is threaded explicitly rather than set via
// process-wide globals, unlike the source's module-level
// pytesseract.pytesseract.tesseract_cmd (spec §9).
type Engine struct {
	cmd         string
	tessdataDir string
}

// NewEngine resolves the tesseract binary per cfg: an explicit path wins,
// otherwise PATH lookup is used.
func NewEngine(cfg config.OCRConfig) (*Engine, error) {
	cmd := cfg.TesseractCmd
	if cmd == "" {
		cmd = "tesseract"
	}

	if filepath.IsAbs(cmd) {
		if _, err := os.Stat(cmd); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrTesseractNotFound, cmd)
		}
	} else if _, err := exec.LookPath(cmd); err != nil {
		return nil, fmt.Errorf("%w: %s not on PATH", ErrTesseractNotFound, cmd)
	}

	tessdata := cfg.TessdataDir
	if tessdata != "" {
		if _, err := os.Stat(tessdata); err != nil {
			tessdata = ""
		}
	}

	return &Engine{cmd: cmd, tessdataDir: tessdata}, nil
}

// EnsureLanguages verifies every language in langs is installed, per
// `tesseract --list-langs` (spec §4.4 precondition check).
func (e *Engine) EnsureLanguages(ctx context.Context, langs []string) error {
	installed, err := e.installedLangs(ctx)
	if err != nil {
		return fmt.Errorf("ocr: listing installed languages: %w", err)
	}

	var missing []string
	for _, l := range langs {
		if !installed[l] {
			missing = append(missing, l)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingLanguageData, strings.Join(missing, ", "))
	}
	return nil
}

func (e *Engine) installedLangs(ctx context.Context) (map[string]bool, error) {
	args := []string{"--list-langs"}
	if e.tessdataDir != "" {
		args = append(args, "--tessdata-dir", e.tessdataDir)
	}

	cmd := exec.CommandContext(ctx, e.cmd, args...) //nolint:gosec // cmd resolved via NewEngine
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("running %s %s: %w", e.cmd, strings.Join(args, " "), err)
	}

	langs := make(map[string]bool)
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(strings.ToLower(line), "list of available languages") {
			continue
		}
		langs[line] = true
	}
	return langs, nil
}

// RecognizeFile runs tesseract against imagePath using the given language
// spec and page-segmentation flags, returning the trimmed, non-empty-line
// text (spec §4.4: text is normalized the same way the source's
// extract_text_from_image_path does).
func (e *Engine) RecognizeFile(ctx context.Context, imagePath, lang string, psmFlags []string) (string, error) {
	args := []string{imagePath, "stdout", "-l", lang}
	args = append(args, psmFlags...)
	if e.tessdataDir != "" {
		args = append(args, "--tessdata-dir", e.tessdataDir)
	}

	cmd := exec.CommandContext(ctx, e.cmd, args...) //nolint:gosec // cmd resolved via NewEngine, imagePath from our own pipeline dirs
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ocr: tesseract on %s: %w: %s", imagePath, err, stderr.String())
	}

	return normalizeText(stdout.String()), nil
}

func normalizeText(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			kept = append(kept, ln)
		}
	}
	return strings.Join(kept, "\n")
}
