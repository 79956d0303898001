// Package crop implements the Cropper stage (spec §4.3): partitioning a
// voter-grid page into a 10x3 grid of cells, sanitizing each cell (erasing
// the photo, relocating the EPIC ID, appending the end-of-record marker),
// and stacking the 30 cells vertically into one tall JPEG. Image
// manipulation is built on disintegration/imaging + image/draw, the same
// library the teacher uses in internal/utils/image_processing.go for
// crop/paste/resize/new-canvas operations.
package crop

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp" // register BMP decoding for loadImage, as the teacher's image_io.go does

	"github.com/ashathullah/voter-shield/internal/config"
)

// Cropper partitions voter-grid pages and sanitizes each cell.
type Cropper struct {
	Cfg    config.CropConfig
	marker image.Image
}

// New returns a Cropper configured per cfg, with the embedded VOTER_END
// marker asset decoded once and shared read-only across workers.
func New(cfg config.CropConfig) (*Cropper, error) {
	m, err := loadMarker()
	if err != nil {
		return nil, fmt.Errorf("crop: loading marker asset: %w", err)
	}
	return &Cropper{Cfg: cfg, marker: m}, nil
}

// PageResult names the two files produced for one voter-grid page.
type PageResult struct {
	StackedPath string
	StreetPath  string
}

// CropPage partitions one voter-grid page JPEG into its 10x3 cell grid,
// sanitizes every cell, stacks them vertically, and saves the page's
// header strip, per spec §4.3.
func (c *Cropper) CropPage(pageJPEGPath, docID string, pageNo int, cropsDir string) (PageResult, error) {
	img, err := loadImage(pageJPEGPath)
	if err != nil {
		return PageResult{}, fmt.Errorf("crop: loading %s: %w", pageJPEGPath, err)
	}

	pageStem := fmt.Sprintf("%s_page_%02d", docID, pageNo)

	streetPath := filepath.Join(cropsDir, pageStem+"_street.png")
	if err := c.saveHeaderStrip(img, streetPath); err != nil {
		return PageResult{}, err
	}

	cells, err := c.partition(img)
	if err != nil {
		return PageResult{}, fmt.Errorf("crop: partitioning %s: %w", pageJPEGPath, err)
	}

	sanitized := make([]*image.NRGBA, len(cells))
	for i, cellImg := range cells {
		sanitized[i] = c.sanitizeCell(cellImg)
	}

	stacked := c.stackVertically(sanitized)
	stackedPath := filepath.Join(cropsDir, pageStem+"_stacked_crops.jpg")
	if err := writeJPEG(stackedPath, stacked, 95); err != nil {
		return PageResult{}, err
	}

	return PageResult{StackedPath: stackedPath, StreetPath: streetPath}, nil
}

// partition trims the page margins and slices the content rectangle into
// Rows x Cols cells in row-major order.
func (c *Cropper) partition(img image.Image) ([]image.Image, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	topHeader := int(float64(h) * c.Cfg.HeaderMarginPct)
	bottomFooter := int(float64(h) * c.Cfg.FooterMarginPct)
	leftMargin := int(float64(w) * c.Cfg.SideMarginPct)
	rightMargin := int(float64(w) * c.Cfg.SideMarginPct)

	contentX := leftMargin
	contentY := topHeader
	contentW := w - leftMargin - rightMargin
	contentH := h - topHeader - bottomFooter
	if contentW <= 0 || contentH <= 0 {
		return nil, fmt.Errorf("crop: page %dx%d too small for margins", w, h)
	}

	boxW := float64(contentW) / float64(c.Cfg.Cols)
	boxH := float64(contentH) / float64(c.Cfg.Rows)

	cells := make([]image.Image, 0, c.Cfg.Rows*c.Cfg.Cols)
	for r := range c.Cfg.Rows {
		for col := range c.Cfg.Cols {
			left := contentX + int(float64(col)*boxW)
			upper := contentY + int(float64(r)*boxH)
			right := left + int(boxW)
			lower := upper + int(boxH)
			rect := image.Rect(left, upper, right, lower)
			cells = append(cells, imaging.Crop(img, rect))
		}
	}
	return cells, nil
}

// sanitizeCell erases the photo region, relocates the EPIC ID, and appends
// the end-of-record marker, in that order (spec §4.3 steps 1-3).
func (c *Cropper) sanitizeCell(cellImg image.Image) *image.NRGBA {
	cell := imaging.Clone(cellImg)
	c.erasePhoto(cell)
	c.relocateEPIC(cell)
	return c.appendMarker(cell)
}

// erasePhoto whitens the photo region in the right-lower corner of the
// cell, padded by PhotoPaddingPct on every side (spec §4.3 step 1).
func (c *Cropper) erasePhoto(cell *image.NRGBA) {
	b := cell.Bounds()
	cw, ch := b.Dx(), b.Dy()

	left := int(float64(cw) * (1 - c.Cfg.PhotoWidthRatio))
	top := int(float64(ch) * c.Cfg.PhotoYRatio)
	right := cw
	bottom := ch

	padX := int(float64(cw) * c.Cfg.PhotoPaddingPct)
	padY := int(float64(ch) * c.Cfg.PhotoPaddingPct)

	left = clamp(left-padX, 0, cw)
	top = clamp(top-padY, 0, ch)
	right = clamp(right+padX, 0, cw)
	bottom = clamp(bottom+padY, 0, ch)

	fillWhite(cell, image.Rect(left, top, right, bottom))
}

// relocateEPIC copies the EPIC-ID region (top-right of the cell), whitens
// the original region, and pastes the copy into the bottom-left area of
// the cell, clipping if vertical space is insufficient (spec §4.3 step 2).
func (c *Cropper) relocateEPIC(cell *image.NRGBA) {
	b := cell.Bounds()
	cw, ch := b.Dx(), b.Dy()

	x1 := int(float64(cw) * c.Cfg.EPICXRatio)
	y1 := 10
	x2 := cw
	y2 := int(float64(ch) * c.Cfg.EPICYRatio)
	if y1 >= y2 || x1 >= x2 {
		return
	}

	epicRegion := imaging.Crop(cell, image.Rect(x1, y1, x2, y2))
	epicW, epicH := epicRegion.Bounds().Dx(), epicRegion.Bounds().Dy()

	fillWhite(cell, image.Rect(x1, 0, cw, y2))

	bottomStartY := int(float64(ch) * (1 - c.Cfg.BottomEmptyRatio))
	pasteX := c.Cfg.RelocatePadding
	pasteY := bottomStartY + c.Cfg.RelocatePadding

	if pasteY+epicH <= ch {
		draw.Draw(cell, image.Rect(pasteX, pasteY, pasteX+epicW, pasteY+epicH), epicRegion, image.Point{}, draw.Src)
		return
	}

	visibleH := ch - pasteY
	if visibleH <= 0 {
		return
	}
	clipped := imaging.Crop(epicRegion, image.Rect(0, 0, epicW, visibleH))
	draw.Draw(cell, image.Rect(pasteX, pasteY, pasteX+epicW, pasteY+visibleH), clipped, image.Point{}, draw.Src)
}

// appendMarker pastes a scaled copy of the VOTER_END sentinel over a
// whitened backing rectangle, anchored to the cell's bottom (spec §4.3
// step 3). It returns a new image since the marker may extend the logical
// content even though physical dimensions are unchanged.
func (c *Cropper) appendMarker(cell *image.NRGBA) *image.NRGBA {
	b := cell.Bounds()
	ch := b.Dy()

	mb := c.marker.Bounds()
	newW := int(float64(mb.Dx()) * c.Cfg.MarkerScale)
	newH := int(float64(mb.Dy()) * c.Cfg.MarkerScale)
	resizedMarker := imaging.Resize(c.marker, newW, newH, imaging.CatmullRom)

	pasteX := c.Cfg.MarkerLeftPadding
	pasteY := ch - newH - c.Cfg.MarkerBottomPadding

	out := imaging.Clone(cell)
	if newH+c.Cfg.MarkerBottomPadding > ch || pasteY < 0 {
		// Not enough vertical room: leave the cell sanitized but unmarked
		// rather than corrupting the image (defensive relative to the
		// source's hard ValueError in this situation).
		return out
	}

	fillWhite(out, image.Rect(pasteX, pasteY, pasteX+newW, pasteY+newH))
	draw.Draw(out, image.Rect(pasteX, pasteY, pasteX+newW, pasteY+newH), resizedMarker, image.Point{}, draw.Over)
	return out
}

// stackVertically concatenates cells top-to-bottom with StackPadding
// between them, padding narrower cells to the max width (spec §4.3, final
// paragraph).
func (c *Cropper) stackVertically(cells []*image.NRGBA) *image.NRGBA {
	maxWidth := 0
	totalHeight := 0
	for i, cell := range cells {
		b := cell.Bounds()
		if b.Dx() > maxWidth {
			maxWidth = b.Dx()
		}
		totalHeight += b.Dy()
		if i > 0 {
			totalHeight += c.Cfg.StackPadding
		}
	}

	out := imaging.New(maxWidth, totalHeight, color.White)
	y := 0
	for i, cell := range cells {
		draw.Draw(out, image.Rect(0, y, maxWidth, y+cell.Bounds().Dy()), cell, image.Point{}, draw.Src)
		y += cell.Bounds().Dy()
		if i < len(cells)-1 {
			y += c.Cfg.StackPadding
		}
	}
	return out
}

func (c *Cropper) saveHeaderStrip(img image.Image, streetPath string) error {
	b := img.Bounds()
	topHeight := int(float64(b.Dy()) * c.Cfg.HeaderStripHeightPct)
	strip := imaging.Crop(img, image.Rect(0, 0, b.Dx(), topHeight))

	f, err := os.Create(streetPath) //nolint:gosec // streetPath derives from a configured crops dir
	if err != nil {
		return fmt.Errorf("crop: creating %s: %w", streetPath, err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(streetPath), ".png") {
		return png.Encode(f, strip)
	}
	return jpeg.Encode(f, strip, &jpeg.Options{Quality: 95})
}

func fillWhite(img *image.NRGBA, rect image.Rectangle) {
	draw.Draw(img, rect, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path derives from a configured rendered-pages dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	img, _, err := image.Decode(f)
	return img, err
}

func writeJPEG(path string, img image.Image, quality int) error {
	f, err := os.Create(path) //nolint:gosec // path derives from a configured crops dir
	if err != nil {
		return fmt.Errorf("crop: creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
}

// SortPageFiles sorts voter-grid page filenames lexicographically, which
// equals page order because page numbers are zero-padded to at least 2
// digits (spec §4.5).
func SortPageFiles(paths []string) {
	sort.Strings(paths)
}
