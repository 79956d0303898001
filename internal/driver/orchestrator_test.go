package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodePrefersDocumentFailureOverStrictFailure(t *testing.T) {
	summary := RunSummary{
		Outcomes:       []Outcome{{Kind: KindOK}, {Kind: KindDocumentFailure}},
		StrictFailures: []string{"doc1"},
	}
	assert.Equal(t, 2, summary.ExitCode())
}

func TestExitCodeStrictFailureWithNoHardFailures(t *testing.T) {
	summary := RunSummary{
		Outcomes:       []Outcome{{Kind: KindOK}, {Kind: KindIntegrityWarning, StrictMismatch: true}},
		StrictFailures: []string{"doc1"},
	}
	assert.Equal(t, 1, summary.ExitCode())
}

func TestExitCodeCleanRun(t *testing.T) {
	summary := RunSummary{Outcomes: []Outcome{{Kind: KindOK}, {Kind: KindIntegrityWarning}}}
	assert.Equal(t, 0, summary.ExitCode())
}

func TestDocExtension(t *testing.T) {
	assert.Equal(t, ".xlsx", docExtension("xlsx"))
	assert.Equal(t, ".csv", docExtension("csv"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	assert.True(t, fileExists(path))
	assert.False(t, fileExists(filepath.Join(dir, "absent.csv")))
}
