package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"
	cfg.Strict = true
	cfg.OCR.Workers = 6
	cfg.S3.InputURIs = []string{"s3://rolls/2024/"}

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, cfg, decoded)
}

func TestConfigYAMLUnmarshalFromDocument(t *testing.T) {
	doc := `
log_level: error
strict: true
dirs:
  pdf: /data/pdf
  jpg: /data/jpg
  crops: /data/crops
  ocr: /data/ocr
  csv: /data/csv
ocr:
  workers: 3
  min_expected_splits: 25
writer:
  format: xlsx
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))

	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 3, cfg.OCR.Workers)
	assert.Equal(t, 25, cfg.OCR.MinExpectedSplits)
	assert.Equal(t, "xlsx", cfg.Writer.Format)
}
