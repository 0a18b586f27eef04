package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"exoplanet-explorer/explorer"
	"exoplanet-explorer/models"
	"exoplanet-explorer/visualization"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMockConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`classifier:
  mock: true
  mock_delay: 0s
database:
  path: %s
logging:
  level: error
`, filepath.Join(dir, "history.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		sampleIndex = 0
		outputDir = ""
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderResult(t *testing.T) {
	rec, err := explorer.Sample(1)
	require.NoError(t, err)
	r := &models.AnalysisResult{
		Status:     models.StatusFalsePositive,
		Confidence: 88.4,
		PlanetName: rec.Name(),
		Data:       rec,
		Issues:     models.DeriveIssues(rec),
	}

	out := renderResult(r, visualization.Derive(rec, r.Status))
	assert.Contains(t, out, "K00754.01: False Positive")
	assert.Contains(t, out, "88.40%")
	assert.Contains(t, out, "Stellar eclipse")
	assert.Contains(t, out, "Warm Jupiter")
}

func TestClassifyCommand_Sample(t *testing.T) {
	out, err := execute(t, "--config", writeMockConfig(t), "classify", "--sample", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Kepler-227 b: Confirmed")
}

func TestClassifyCommand_RequiresInput(t *testing.T) {
	_, err := execute(t, "--config", writeMockConfig(t), "classify")
	assert.ErrorContains(t, err, "a file or --sample is required")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "rows.csv")
	require.NoError(t, os.WriteFile(input, []byte("pl_name,pl_orbper,pl_trandep,pl_rade\nA,3.2,500,1.1\nB,8.1,900,2.5\nC,1.2,7000,40\n"), 0644))
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "--config", writeMockConfig(t), "batch", input, "-o", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Processed 3 / 3")
	assert.Contains(t, out, "3 succeeded, 0 failed")

	matches, err := filepath.Glob(filepath.Join(outDir, "exoplanet_batch_results_*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	f, err := os.Open(matches[0])
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "false", records[3][12], "a 40 Earth-radius object is rejected by the mock")
}
