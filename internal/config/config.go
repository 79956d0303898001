package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultConfig returns a configuration with the defaults named in spec §6
// and §9 (DPI 300, crop_workers 4, ocr_workers 2, MIN_EXPECTED_SPLITS 25,
// output format xlsx, state dir "runs").
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Dirs: DirsConfig{
			PDF:   "pdf",
			JPG:   "jpg",
			Crops: "crops",
			OCR:   "ocr",
			CSV:   "csv",
		},
		Render: RenderConfig{
			DPI:         300,
			JPEGQuality: 95,
		},
		Crop: CropConfig{
			Workers:         4,
			HeaderMarginPct: 0.032,
			FooterMarginPct: 0.032,
			SideMarginPct:   0.024,
			Rows:            10,
			Cols:            3,
			PhotoWidthRatio: 380.0 / 1555.0,
			PhotoYRatio:     (620.0 - 480.0) / 620.0,
			PhotoPaddingPct: 0.02,
			EPICXRatio:       0.60,
			EPICYRatio:       0.25,
			BottomEmptyRatio: 0.30,
			RelocatePadding:  6,
			MarkerScale:          2.0,
			MarkerBottomPadding:  8,
			MarkerLeftPadding:    500,
			StackPadding:         10,
			HeaderStripHeightPct: 0.05,
		},
		OCR: OCRConfig{
			Workers:           2,
			MinExpectedSplits: 25,
		},
		Writer: WriterConfig{
			Format: "xlsx",
		},
		RunState: RunStateConfig{
			StateDir: "runs",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9090",
			Timeout: 10 * time.Second,
		},
	}
}

// Validate checks structural constraints (ranges, required fields, enum
// membership) using struct tags, matching sassoftware-pdf-xtract's
// validator-based Config.Validate.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if c.Crop.Rows*c.Crop.Cols <= 0 {
		return errInvalidGrid
	}
	return nil
}
