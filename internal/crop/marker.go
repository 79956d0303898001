package crop

import (
	"bytes"
	_ "embed"
	"image"
	_ "image/png"
)

// markerPNG is the VOTER_END end-of-record marker: a fixed asset, a
// rendered bitmap of the MarkerToken text, pasted into every cell so the
// OCR engine reads it back as a literal token (spec §4.3; see DESIGN.md
// for how the asset was produced). It is the only resource shared
// read-only across cropper workers (spec §9).
//
//go:embed assets/voter_end_marker.png
var markerPNG []byte

// MarkerToken is the literal text stamped into the marker image. The
// extractor splits stacked OCR text on lines containing this token
// (internal/extract).
const MarkerToken = "VOTEREND"

func loadMarker() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(markerPNG))
	return img, err
}
