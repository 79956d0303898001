//nolint:lll
package config

import "time"

// Config is the complete, explicit configuration for the votershield
// pipeline. Every tunable the source scattered across module-level
// constants and string-keyed option dicts becomes a named, validated field
// here (spec §9).
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Dirs     DirsConfig     `mapstructure:"dirs" yaml:"dirs" json:"dirs"`
	Render   RenderConfig   `mapstructure:"render" yaml:"render" json:"render"`
	Crop     CropConfig     `mapstructure:"crop" yaml:"crop" json:"crop"`
	OCR      OCRConfig      `mapstructure:"ocr" yaml:"ocr" json:"ocr"`
	Writer   WriterConfig   `mapstructure:"writer" yaml:"writer" json:"writer"`
	RunState RunStateConfig `mapstructure:"run_state" yaml:"run_state" json:"run_state"`
	S3       S3Config       `mapstructure:"s3" yaml:"s3" json:"s3"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics" json:"metrics"`

	Strict bool `mapstructure:"strict" yaml:"strict" json:"strict"`
}

// DirsConfig is the on-disk layout root (spec §6).
type DirsConfig struct {
	PDF   string `mapstructure:"pdf" yaml:"pdf" json:"pdf" validate:"required"`
	JPG   string `mapstructure:"jpg" yaml:"jpg" json:"jpg" validate:"required"`
	Crops string `mapstructure:"crops" yaml:"crops" json:"crops" validate:"required"`
	OCR   string `mapstructure:"ocr" yaml:"ocr" json:"ocr" validate:"required"`
	CSV   string `mapstructure:"csv" yaml:"csv" json:"csv" validate:"required"`
}

// RenderConfig controls PDF-to-JPEG rasterization (spec §4.2).
type RenderConfig struct {
	DPI        int `mapstructure:"dpi" yaml:"dpi" json:"dpi" validate:"min=72,max=1200"`
	JPEGQuality int `mapstructure:"jpeg_quality" yaml:"jpeg_quality" json:"jpeg_quality" validate:"min=1,max=100"`
}

// CropConfig controls the 10x3 grid partition and sanitization geometry
// (spec §4.3). Ratios are fractions of content width/height or cell
// width/height as named.
type CropConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers" validate:"min=1"`

	HeaderMarginPct float64 `mapstructure:"header_margin_pct" yaml:"header_margin_pct" json:"header_margin_pct"`
	FooterMarginPct float64 `mapstructure:"footer_margin_pct" yaml:"footer_margin_pct" json:"footer_margin_pct"`
	SideMarginPct   float64 `mapstructure:"side_margin_pct" yaml:"side_margin_pct" json:"side_margin_pct"`

	Rows int `mapstructure:"rows" yaml:"rows" json:"rows" validate:"min=1"`
	Cols int `mapstructure:"cols" yaml:"cols" json:"cols" validate:"min=1"`

	PhotoWidthRatio float64 `mapstructure:"photo_width_ratio" yaml:"photo_width_ratio" json:"photo_width_ratio"`
	PhotoYRatio     float64 `mapstructure:"photo_y_ratio" yaml:"photo_y_ratio" json:"photo_y_ratio"`
	PhotoPaddingPct float64 `mapstructure:"photo_padding_pct" yaml:"photo_padding_pct" json:"photo_padding_pct"`

	EPICXRatio       float64 `mapstructure:"epic_x_ratio" yaml:"epic_x_ratio" json:"epic_x_ratio"`
	EPICYRatio       float64 `mapstructure:"epic_y_ratio" yaml:"epic_y_ratio" json:"epic_y_ratio"`
	BottomEmptyRatio float64 `mapstructure:"bottom_empty_ratio" yaml:"bottom_empty_ratio" json:"bottom_empty_ratio"`
	RelocatePadding  int     `mapstructure:"relocate_padding" yaml:"relocate_padding" json:"relocate_padding"`

	MarkerScale         float64 `mapstructure:"marker_scale" yaml:"marker_scale" json:"marker_scale"`
	MarkerBottomPadding int     `mapstructure:"marker_bottom_padding" yaml:"marker_bottom_padding" json:"marker_bottom_padding"`
	MarkerLeftPadding   int     `mapstructure:"marker_left_padding" yaml:"marker_left_padding" json:"marker_left_padding"`

	StackPadding        int     `mapstructure:"stack_padding" yaml:"stack_padding" json:"stack_padding"`
	HeaderStripHeightPct float64 `mapstructure:"header_strip_height_pct" yaml:"header_strip_height_pct" json:"header_strip_height_pct"`
}

// OCRConfig controls the OCR runner (spec §4.4).
type OCRConfig struct {
	Workers       int    `mapstructure:"workers" yaml:"workers" json:"workers" validate:"min=1"`
	TesseractCmd  string `mapstructure:"tesseract_cmd" yaml:"tesseract_cmd" json:"tesseract_cmd"`
	TessdataDir   string `mapstructure:"tessdata_dir" yaml:"tessdata_dir" json:"tessdata_dir"`
	MinExpectedSplits int `mapstructure:"min_expected_splits" yaml:"min_expected_splits" json:"min_expected_splits" validate:"min=1"`
	Regression    bool   `mapstructure:"regression" yaml:"regression" json:"regression"`
	RegressionFixture string `mapstructure:"regression_fixture" yaml:"regression_fixture" json:"regression_fixture"`
}

// WriterConfig controls per-document and combined output (spec §4.8).
type WriterConfig struct {
	Format       string `mapstructure:"format" yaml:"format" json:"format" validate:"oneof=csv xlsx"`
	NoCombined   bool   `mapstructure:"no_combined" yaml:"no_combined" json:"no_combined"`
}

// RunStateConfig controls the resumable run ledger (spec §4.9).
type RunStateConfig struct {
	StateDir string `mapstructure:"state_dir" yaml:"state_dir" json:"state_dir" validate:"required"`
	RunID    string `mapstructure:"run_id" yaml:"run_id" json:"run_id"`
	Resume   bool   `mapstructure:"resume" yaml:"resume" json:"resume"`
}

// S3Config controls optional object-store input/output (spec §4.1, §4.8).
type S3Config struct {
	InputURIs []string `mapstructure:"input_uris" yaml:"input_uris" json:"input_uris"`
	OutputURI string   `mapstructure:"output_uri" yaml:"output_uri" json:"output_uri"`
}

// MetricsConfig controls the optional Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Addr    string        `mapstructure:"addr" yaml:"addr" json:"addr"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}
