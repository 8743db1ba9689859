package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "raw_data/Visitors_by_nationality.csv", cfg.Clean.Input)
	assert.Equal(t, "processed_data/cleaned_visitors.csv", cfg.Clean.Output)
	assert.Equal(t, "utf-8", cfg.Clean.Encoding)
	assert.Equal(t, ",", cfg.Clean.ThousandsSeparators)
	assert.Empty(t, cfg.Clean.MissingMarkers)
	assert.Equal(t, "lexical", cfg.Clean.MonthOrder)
	assert.Equal(t, "tourist", cfg.Charts.Metric)
	assert.Equal(t, 2024, cfg.Charts.MaxYear)
	assert.Equal(t, 2020, cfg.Charts.CovidStart)
	assert.Equal(t, 2022, cfg.Charts.CovidEnd)
	assert.Len(t, cfg.Charts.Periods, 6)
	assert.Equal(t, []string{"Africa"}, cfg.Charts.ExcludeRegions)
	assert.Equal(t, []int{2023, 2024}, cfg.Charts.RecentYears)
	assert.Equal(t, 2011, cfg.Charts.GrowthBaseYear)
	assert.Equal(t, 10, cfg.Charts.TopN)
	assert.Equal(t, 15, cfg.Charts.RaceBars)
	assert.Equal(t, DefaultPalette, cfg.Charts.Palette)
	assert.InDelta(t, 9.0, cfg.Spend.StayDays, 0.001)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "tourism.visitor_counts", cfg.Store.Table)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, "processed_data/tourism.xlsx", cfg.Export.Path)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
clean:
  input: data/visitors.csv
  encoding: shift_jis
  month_order: calendar
log:
  level: debug
  format: console
charts:
  top_n: 5
fetch:
  sources:
    - name: visitors
      url: https://example.com/visitors.zip
      dest: raw_data/visitors.zip
      unzip: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/visitors.csv", cfg.Clean.Input)
	assert.Equal(t, "shift_jis", cfg.Clean.Encoding)
	assert.Equal(t, "calendar", cfg.Clean.MonthOrder)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 5, cfg.Charts.TopN)
	require.Len(t, cfg.Fetch.Sources, 1)
	assert.Equal(t, "visitors", cfg.Fetch.Sources[0].Name)
	assert.True(t, cfg.Fetch.Sources[0].Unzip)
	// Defaults still apply for unset values
	assert.Equal(t, "processed_data/cleaned_visitors.csv", cfg.Clean.Output)
	assert.Equal(t, 15, cfg.Charts.RaceBars)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("TOURISM_STORE_DRIVER", "postgres")
	t.Setenv("TOURISM_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("TOURISM_CHARTS_MAX_YEAR", "2025")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2025, cfg.Charts.MaxYear)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("clean: [unterminated"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Clean.Input = "raw_data/Visitors_by_nationality.csv"
	cfg.Clean.Output = "processed_data/cleaned_visitors.csv"
	cfg.Clean.MonthOrder = "lexical"
	cfg.Charts.Metric = "tourist"
	cfg.Charts.CovidStart = 2020
	cfg.Charts.CovidEnd = 2022
	cfg.Charts.TopN = 10
	cfg.Charts.RaceBars = 15
	cfg.Charts.Concurrency = 4
	cfg.Charts.WidthInches = 14
	cfg.Charts.HeightInches = 8
	cfg.Spend.StayDays = 9
	cfg.Fetch.Concurrency = 3
	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = "tourism.db"
	cfg.Export.Path = "tourism.xlsx"
	return cfg
}

func TestValidateClean(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("clean"))

	cfg.Clean.Input = ""
	cfg.Clean.MonthOrder = "random"
	err := cfg.Validate("clean")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clean.input is required")
	assert.Contains(t, err.Error(), "clean.month_order must be lexical or calendar")
}

func TestValidateClean_MonthOrderNormalized(t *testing.T) {
	cfg := validDefaults()
	cfg.Clean.MonthOrder = " Calendar "
	require.NoError(t, cfg.Validate("clean"))
	assert.Equal(t, "calendar", cfg.Clean.MonthOrder)

	cfg.Clean.MonthOrder = "LEXICAL"
	require.NoError(t, cfg.Validate("clean"))
	assert.Equal(t, "lexical", cfg.Clean.MonthOrder)
}

func TestValidateCharts(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("charts"))

	cfg.Charts.Metric = "visitors"
	err := cfg.Validate("charts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "charts.metric")
	assert.Contains(t, err.Error(), "total, tourist, business, others, short_excursion")

	cfg.Charts.Metric = "short_excursion"
	cfg.Charts.CovidStart = 2023
	err = cfg.Validate("charts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "covid_start")

	cfg.Charts.CovidStart = 2020
	cfg.Charts.Concurrency = 0
	err = cfg.Validate("charts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "charts.concurrency must be between 1 and 16")
}

func TestValidateFetch(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("fetch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one source")

	cfg.Fetch.Sources = []SourceConfig{{Name: "v", URL: "https://example.com/v.csv"}}
	err = cfg.Validate("fetch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch.sources[0] needs url and dest")

	cfg.Fetch.Sources[0].Dest = "raw_data/v.csv"
	assert.NoError(t, cfg.Validate("fetch"))
}

func TestValidateLoad(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("load"))

	cfg.Store.Driver = "mysql"
	cfg.Store.DatabaseURL = ""
	err := cfg.Validate("load")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite or postgres")
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidateSpend(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("spend"))

	cfg.Spend.StayDays = 0
	assert.Error(t, cfg.Validate("spend"))
}

func TestValidateExport(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("export"))

	cfg.Export.Path = ""
	err := cfg.Validate("export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export.path is required")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
