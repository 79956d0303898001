package crop

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/ashathullah/voter-shield/internal/config"
)

func writeTestPage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.White)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 95}))
}

func TestCropPageProducesStackedAndStreetFiles(t *testing.T) {
	cfg := config.DefaultConfig().Crop
	cropper, err := New(cfg)
	require.NoError(t, err)

	dir := t.TempDir()
	pagePath := filepath.Join(dir, "doc1_page_01.jpg")
	writeTestPage(t, pagePath, 1555, 2200)

	cropsDir := filepath.Join(dir, "crops")
	require.NoError(t, os.MkdirAll(cropsDir, 0o750))

	res, err := cropper.CropPage(pagePath, "doc1", 1, cropsDir)
	require.NoError(t, err)

	require.FileExists(t, res.StackedPath)
	require.FileExists(t, res.StreetPath)

	f, err := os.Open(res.StackedPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	stacked, _, err := image.Decode(f)
	require.NoError(t, err)

	b := stacked.Bounds()
	require.Equal(t, cfg.Rows*cfg.Cols, countCells(cfg))
	require.Greater(t, b.Dy(), 0)
	require.Greater(t, b.Dx(), 0)
}

func countCells(cfg config.CropConfig) int {
	return cfg.Rows * cfg.Cols
}

func TestPartitionProducesExpectedCellCount(t *testing.T) {
	cfg := config.DefaultConfig().Crop
	cropper, err := New(cfg)
	require.NoError(t, err)

	img := imaging.New(1555, 2200, color.White)
	cells, err := cropper.partition(img)
	require.NoError(t, err)
	require.Len(t, cells, cfg.Rows*cfg.Cols)
}

func TestPartitionRejectsTooSmallPage(t *testing.T) {
	cfg := config.DefaultConfig().Crop
	cropper, err := New(cfg)
	require.NoError(t, err)

	img := imaging.New(4, 4, color.White)
	_, err = cropper.partition(img)
	require.Error(t, err)
}

func TestAppendMarkerLeavesCellUnmarkedWhenNoRoom(t *testing.T) {
	cfg := config.DefaultConfig().Crop
	cropper, err := New(cfg)
	require.NoError(t, err)

	cell := imaging.New(50, 20, color.White)
	out := cropper.appendMarker(imaging.Clone(cell))
	require.Equal(t, cell.Bounds(), out.Bounds())
	require.Equal(t, cell.Pix, out.Pix)
}

func TestSortPageFilesOrdersByZeroPaddedNumber(t *testing.T) {
	paths := []string{
		"doc1_page_10.jpg",
		"doc1_page_02.jpg",
		"doc1_page_01.jpg",
	}
	SortPageFiles(paths)
	require.Equal(t, []string{"doc1_page_01.jpg", "doc1_page_02.jpg", "doc1_page_10.jpg"}, paths)
}
