package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashathullah/voter-shield/internal/runstate"
	"github.com/ashathullah/voter-shield/internal/voter"
	"github.com/ashathullah/voter-shield/internal/writer"
)

func TestRunRegressionWritesFixtureThrough(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "fixture.csv")
	header := "assembly,part_no,street,serial_no,epic_id,name,father_name,mother_name,husband_name,other_name,house_no,age,gender,TOTAL_FLAGS,FLAG_REASONS,EXPLANATION_1\n"
	row := "Assembly 12,7,Main Street,1,ABC1234567,Jane Doe,,,John Doe,,12,34,female,0,,\n"
	require.NoError(t, os.WriteFile(fixturePath, []byte(header+row), 0o600))

	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o750))

	runState, err := runstate.New(filepath.Join(dir, "runs"), "test-run")
	require.NoError(t, err)

	require.NoError(t, RunRegression(fixturePath, outDir, "csv", false, runState, "test-run", "test-version"))

	outPath := filepath.Join(outDir, "final_voter_data.csv")
	require.FileExists(t, outPath)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ABC1234567")
	assert.Contains(t, string(data), strings.Join(writer.Columns, ","))

	perDocPath := filepath.Join(outDir, "fixture.csv")
	require.FileExists(t, perDocPath)

	reportPath := filepath.Join(outDir, "fixture.report.json")
	require.FileExists(t, reportPath)
	reportData, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(reportData), `"doc_id": "fixture"`)

	state, ok := runState.Get("fixture")
	require.True(t, ok)
	assert.Equal(t, voter.StatusCompleted, state.Status)
	require.NotNil(t, state.ExtractedVoters)
	assert.Equal(t, 1, *state.ExtractedVoters)
}
