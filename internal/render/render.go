// Package render implements the Renderer stage (spec §4.2): classifying a
// PDF's pages into cover/voter-grid/summary and rasterizing each to JPEG.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/ashathullah/voter-shield/internal/config"
	"github.com/ashathullah/voter-shield/internal/langroute"
	"github.com/ashathullah/voter-shield/internal/voter"
)

// ErrNoPages is a per-document fatal error: the PDF reports zero pages.
var ErrNoPages = errors.New("render: pdf has zero pages")

// Result describes the outcome of rendering one document.
type Result struct {
	PagesTotal int
	CoverJPEGs []string
	VoterJPEGs []string
	SummaryJPEG string // empty if no summary page
}

// Renderer rasterizes PDF pages to JPEG at a configured DPI/quality.
// Page counting goes through pdfcpu first (the "primary renderer"); when
// pdfcpu cannot report metadata, the secondary renderer (go-fitz, which
// opens the file directly) supplies it instead (spec §4.2). Rasterization
// itself always goes through go-fitz, since pdfcpu only extracts embedded
// raster images rather than compositing a page (documented in DESIGN.md).
type Renderer struct {
	Cfg config.RenderConfig
}

// New returns a Renderer using the given render configuration.
func New(cfg config.RenderConfig) *Renderer {
	return &Renderer{Cfg: cfg}
}

// RenderDocument rasterizes every page of pdfPath into jpgDir, named per
// spec §4.2, and returns the page counts/filenames produced.
func (r *Renderer) RenderDocument(pdfPath, docID string, lang voter.Language, jpgDir string) (Result, error) {
	if err := os.MkdirAll(jpgDir, 0o750); err != nil {
		return Result{}, fmt.Errorf("render: creating %s: %w", jpgDir, err)
	}

	pagesTotal, err := pageCount(pdfPath)
	if err != nil {
		return Result{}, fmt.Errorf("render: determining page count for %s: %w", pdfPath, err)
	}
	if pagesTotal <= 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoPages, pdfPath)
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return Result{}, fmt.Errorf("render: opening %s: %w", pdfPath, err)
	}
	defer func() { _ = doc.Close() }()

	voterStart := langroute.VoterStartPage(lang)
	var out Result
	out.PagesTotal = pagesTotal

	for page := 1; page <= pagesTotal; page++ {
		img, err := r.rasterize(doc, page)
		if err != nil {
			return Result{}, fmt.Errorf("render: rasterizing page %d of %s: %w", page, pdfPath, err)
		}

		switch {
		case page < voterStart:
			name := fmt.Sprintf("%s_cover_%02d.jpg", docID, page)
			path := filepath.Join(jpgDir, name)
			if err := r.writeJPEG(path, img); err != nil {
				return Result{}, err
			}
			out.CoverJPEGs = append(out.CoverJPEGs, path)
		case page == pagesTotal && pagesTotal >= voterStart:
			name := fmt.Sprintf("%s_summary.jpg", docID)
			path := filepath.Join(jpgDir, name)
			if err := r.writeJPEG(path, img); err != nil {
				return Result{}, err
			}
			out.SummaryJPEG = path
		default:
			voterPageNo := page - voterStart + 1
			name := fmt.Sprintf("%s_page_%02d.jpg", docID, voterPageNo)
			path := filepath.Join(jpgDir, name)
			if err := r.writeJPEG(path, img); err != nil {
				return Result{}, err
			}
			out.VoterJPEGs = append(out.VoterJPEGs, path)
		}
	}

	slog.Debug("rendered document", "doc_id", docID, "pages_total", pagesTotal,
		"cover", len(out.CoverJPEGs), "voter_grid", len(out.VoterJPEGs), "summary", out.SummaryJPEG != "")
	return out, nil
}

func (r *Renderer) rasterize(doc *fitz.Document, page int) (image.Image, error) {
	return doc.ImageDPI(page-1, float64(r.Cfg.DPI))
}

func (r *Renderer) writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is built from a configured output dir
	if err != nil {
		return fmt.Errorf("render: creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	quality := r.Cfg.JPEGQuality
	if quality <= 0 {
		quality = 95
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("render: encoding %s: %w", path, err)
	}
	return nil
}

// pageCount asks pdfcpu for the page count first (the "primary renderer");
// if it cannot report one, it falls back to go-fitz opening the file
// directly (the "secondary renderer").
func pageCount(pdfPath string) (int, error) {
	n, err := api.PageCountFile(pdfPath)
	if err == nil && n > 0 {
		return n, nil
	}

	doc, ferr := fitz.New(pdfPath)
	if ferr != nil {
		if err != nil {
			return 0, fmt.Errorf("primary renderer failed (%w) and secondary renderer failed: %v", err, ferr)
		}
		return 0, ferr
	}
	defer func() { _ = doc.Close() }()
	return doc.NumPage(), nil
}
