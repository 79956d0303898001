package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "votershield"

	// EnvPrefix is the prefix for environment variables, e.g. VOTERSHIELD_OCR_WORKERS.
	EnvPrefix = "VOTERSHIELD"
)

// Loader loads Config from files, environment variables and (via the
// caller's own flag binding into the shared viper instance) CLI flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a configuration loader bound to the global viper
// instance, so cobra flag bindings registered elsewhere are visible here.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load reads config file + env + defaults, unmarshals into Config and
// validates it. It searches the default config paths for "votershield.yaml".
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	return l.loadCommon()
}

// LoadWithFile behaves like Load but reads the given config file path
// explicitly instead of searching the default paths, for the CLI's
// --config flag.
func (l *Loader) LoadWithFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	return l.loadCommon()
}

func (l *Loader) loadCommon() (*Config, error) {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()

	l.setDefaults(DefaultConfig())

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "votershield"))
	}
	l.v.AddConfigPath("/etc/votershield")
}

func (l *Loader) setDefaults(d Config) {
	l.v.SetDefault("log_level", d.LogLevel)
	l.v.SetDefault("dirs.pdf", d.Dirs.PDF)
	l.v.SetDefault("dirs.jpg", d.Dirs.JPG)
	l.v.SetDefault("dirs.crops", d.Dirs.Crops)
	l.v.SetDefault("dirs.ocr", d.Dirs.OCR)
	l.v.SetDefault("dirs.csv", d.Dirs.CSV)
	l.v.SetDefault("render.dpi", d.Render.DPI)
	l.v.SetDefault("render.jpeg_quality", d.Render.JPEGQuality)
	l.v.SetDefault("crop.workers", d.Crop.Workers)
	l.v.SetDefault("crop.header_margin_pct", d.Crop.HeaderMarginPct)
	l.v.SetDefault("crop.footer_margin_pct", d.Crop.FooterMarginPct)
	l.v.SetDefault("crop.side_margin_pct", d.Crop.SideMarginPct)
	l.v.SetDefault("crop.rows", d.Crop.Rows)
	l.v.SetDefault("crop.cols", d.Crop.Cols)
	l.v.SetDefault("crop.photo_width_ratio", d.Crop.PhotoWidthRatio)
	l.v.SetDefault("crop.photo_y_ratio", d.Crop.PhotoYRatio)
	l.v.SetDefault("crop.photo_padding_pct", d.Crop.PhotoPaddingPct)
	l.v.SetDefault("crop.epic_x_ratio", d.Crop.EPICXRatio)
	l.v.SetDefault("crop.epic_y_ratio", d.Crop.EPICYRatio)
	l.v.SetDefault("crop.bottom_empty_ratio", d.Crop.BottomEmptyRatio)
	l.v.SetDefault("crop.relocate_padding", d.Crop.RelocatePadding)
	l.v.SetDefault("crop.marker_scale", d.Crop.MarkerScale)
	l.v.SetDefault("crop.marker_bottom_padding", d.Crop.MarkerBottomPadding)
	l.v.SetDefault("crop.marker_left_padding", d.Crop.MarkerLeftPadding)
	l.v.SetDefault("crop.stack_padding", d.Crop.StackPadding)
	l.v.SetDefault("crop.header_strip_height_pct", d.Crop.HeaderStripHeightPct)
	l.v.SetDefault("ocr.workers", d.OCR.Workers)
	l.v.SetDefault("ocr.min_expected_splits", d.OCR.MinExpectedSplits)
	l.v.SetDefault("writer.format", d.Writer.Format)
	l.v.SetDefault("run_state.state_dir", d.RunState.StateDir)
	l.v.SetDefault("metrics.addr", d.Metrics.Addr)
	l.v.SetDefault("metrics.timeout", d.Metrics.Timeout)
}
