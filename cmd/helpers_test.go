//go:build !integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tourism-cli/internal/config"
)

const rawVisitors = `Country,,Korea,Korea,China,China,France,France
Year,Month,Total,Tourist,Total,Tourist,Total,Tourist
2011,Jan,"1,000",800,500,400,100,90
,Feb,1200,900,600,500,120,100
2019,Jan,3000,2500,4000,3500,300,250
,Feb,3100,2600,4100,3600,310,260
2021,Jan,10,5,20,10,5,2
2023,Jan,5000,4500,2000,1500,400,350
,Feb,5100,4600,2100,1600,410,360
2024,Jan,6000,5500,3000,2500,500,450
,Feb,6100,5600,3100,2600,510,460
`

// testConfig points every path at a temp dir, clears flag overrides and
// returns the temp dir.
func testConfig(t *testing.T) string {
	t.Helper()
	c, err := config.Load()
	require.NoError(t, err)

	dir := t.TempDir()
	c.Data.RawDir = filepath.Join(dir, "raw_data")
	c.Data.ProcessedDir = filepath.Join(dir, "processed_data")
	c.Data.VisualizationsDir = filepath.Join(dir, "visualizations")
	c.Data.ShapefilePath = filepath.Join(dir, "shapefiles", "gadm41_JPN_1.shp")
	c.Clean.Input = filepath.Join(c.Data.RawDir, "Visitors_by_nationality.csv")
	c.Clean.Output = filepath.Join(c.Data.ProcessedDir, "cleaned_visitors.csv")
	c.Spend.CostsFile = filepath.Join(c.Data.RawDir, travelCostsFile)
	c.Spend.Output = filepath.Join(c.Data.ProcessedDir, "yearly_spend.csv")
	c.Store.DatabaseURL = filepath.Join(c.Data.ProcessedDir, "tourism.db")
	c.Export.Path = filepath.Join(c.Data.ProcessedDir, "tourism.xlsx")
	c.Charts.RaceSteps = 1
	c.Charts.WidthInches, c.Charts.HeightInches = 6, 4
	cfg = c

	require.NoError(t, os.MkdirAll(c.Data.RawDir, 0o755))
	resetFlags()
	return dir
}

func resetFlags() {
	cleanInput, cleanOutput, cleanEncoding, cleanSheet, cleanMonthOrder = "", "", "", "", ""
	chartsInput, chartsMetric, chartsOutDir, chartsConcurrency, chartsNoAnimation = "", "", "", 0, false
	costsInput = ""
	marketsRawDir = ""
	motivationInput, motivationQuestion = "", ""
	prefecturesInput, prefecturesShapefile = "", ""
	spendInput, spendCosts, spendOutput, spendStayDays = "", "", "", 0
	fetchOnly = ""
	loadInput, loadSource, loadDriver, loadDatabaseURL, loadTable = "", "", "", "", ""
	loadShowTotals, loadAppend, loadKeepCounts = false, false, false
	exportInput, exportOutput = "", ""
}

func writeRaw(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(cfg.Data.RawDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCmd(c *cobra.Command) error {
	c.SetContext(context.Background())
	return c.RunE(c, nil)
}

// cleanSample writes the raw sample and runs clean.
func cleanSample(t *testing.T) {
	t.Helper()
	writeRaw(t, filepath.Base(cfg.Clean.Input), rawVisitors)
	require.NoError(t, runCmd(cleanCmd))
}

func requireFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, path)
	assert.Greater(t, info.Size(), int64(0), path)
}
