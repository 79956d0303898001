package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 300, cfg.Render.DPI)
	assert.Equal(t, 4, cfg.Crop.Workers)
	assert.Equal(t, 2, cfg.OCR.Workers)
	assert.Equal(t, 25, cfg.OCR.MinExpectedSplits)
	assert.Equal(t, "xlsx", cfg.Writer.Format)
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Writer.Format = "pdf"
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsZeroDPI(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.DPI = 0
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	require.Error(t, cfg.Validate())
}
