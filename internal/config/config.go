package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Clean  CleanConfig  `yaml:"clean" mapstructure:"clean"`
	Charts ChartsConfig `yaml:"charts" mapstructure:"charts"`
	Spend  SpendConfig  `yaml:"spend" mapstructure:"spend"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the raw inputs and the output directories.
type DataConfig struct {
	RawDir            string `yaml:"raw_dir" mapstructure:"raw_dir"`
	ProcessedDir      string `yaml:"processed_dir" mapstructure:"processed_dir"`
	VisualizationsDir string `yaml:"visualizations_dir" mapstructure:"visualizations_dir"`
	ShapefilePath     string `yaml:"shapefile_path" mapstructure:"shapefile_path"`
}

// CleanConfig configures the visitor reshape pipeline.
type CleanConfig struct {
	Input               string   `yaml:"input" mapstructure:"input"`
	Output              string   `yaml:"output" mapstructure:"output"`
	Encoding            string   `yaml:"encoding" mapstructure:"encoding"`
	Sheet               string   `yaml:"sheet" mapstructure:"sheet"`
	ThousandsSeparators string   `yaml:"thousands_separators" mapstructure:"thousands_separators"`
	MissingMarkers      []string `yaml:"missing_markers" mapstructure:"missing_markers"`
	MonthOrder          string   `yaml:"month_order" mapstructure:"month_order"`
}

// ChartsConfig configures the downstream visitor charts.
type ChartsConfig struct {
	Metric           string   `yaml:"metric" mapstructure:"metric"`
	MaxYear          int      `yaml:"max_year" mapstructure:"max_year"`
	CovidStart       int      `yaml:"covid_start" mapstructure:"covid_start"`
	CovidEnd         int      `yaml:"covid_end" mapstructure:"covid_end"`
	Periods          []string `yaml:"periods" mapstructure:"periods"`
	ExcludeRegions   []string `yaml:"exclude_regions" mapstructure:"exclude_regions"`
	RecentYears      []int    `yaml:"recent_years" mapstructure:"recent_years"`
	GrowthBaseYear   int      `yaml:"growth_base_year" mapstructure:"growth_base_year"`
	GrowthTargetYear int      `yaml:"growth_target_year" mapstructure:"growth_target_year"`
	TopN             int      `yaml:"top_n" mapstructure:"top_n"`
	RaceBars         int      `yaml:"race_bars" mapstructure:"race_bars"`
	RaceSteps        int      `yaml:"race_steps" mapstructure:"race_steps"`
	RaceDelayMS      int      `yaml:"race_delay_ms" mapstructure:"race_delay_ms"`
	WidthInches      float64  `yaml:"width_inches" mapstructure:"width_inches"`
	HeightInches     float64  `yaml:"height_inches" mapstructure:"height_inches"`
	Palette          []string `yaml:"palette" mapstructure:"palette"`
	Concurrency      int      `yaml:"concurrency" mapstructure:"concurrency"`
}

// SpendConfig configures the yearly spend estimate.
type SpendConfig struct {
	CostsFile string  `yaml:"costs_file" mapstructure:"costs_file"`
	StayDays  float64 `yaml:"stay_days" mapstructure:"stay_days"`
	Output    string  `yaml:"output" mapstructure:"output"`
}

// FetchConfig configures raw data downloads.
type FetchConfig struct {
	UserAgent   string         `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int            `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int            `yaml:"max_retries" mapstructure:"max_retries"`
	Concurrency int            `yaml:"concurrency" mapstructure:"concurrency"`
	Sources     []SourceConfig `yaml:"sources" mapstructure:"sources"`
}

// SourceConfig describes one downloadable raw file.
type SourceConfig struct {
	Name  string `yaml:"name" mapstructure:"name"`
	URL   string `yaml:"url" mapstructure:"url"`
	Dest  string `yaml:"dest" mapstructure:"dest"`
	Unzip bool   `yaml:"unzip" mapstructure:"unzip"`
}

// StoreConfig configures where cleaned tables are loaded.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Table       string `yaml:"table" mapstructure:"table"`
}

// ExportConfig configures the workbook export.
type ExportConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultPalette is the ten-colour divergent palette shared by every chart.
var DefaultPalette = []string{
	"#2066a8", "#3a7fc2", "#8ec1da", "#a7d3e4", "#cde1ec",
	"#ededed", "#f6d6c2", "#efb09a", "#d47264", "#ae282c",
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TOURISM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("data.raw_dir", "raw_data")
	v.SetDefault("data.processed_dir", "processed_data")
	v.SetDefault("data.visualizations_dir", "visualizations")
	v.SetDefault("data.shapefile_path", "shapefiles/gadm41_JPN_1.shp")
	v.SetDefault("clean.input", "raw_data/Visitors_by_nationality.csv")
	v.SetDefault("clean.output", "processed_data/cleaned_visitors.csv")
	v.SetDefault("clean.encoding", "utf-8")
	v.SetDefault("clean.thousands_separators", ",")
	v.SetDefault("clean.missing_markers", []string{})
	v.SetDefault("clean.month_order", "lexical")
	v.SetDefault("charts.metric", "tourist")
	v.SetDefault("charts.max_year", 2024)
	v.SetDefault("charts.covid_start", 2020)
	v.SetDefault("charts.covid_end", 2022)
	v.SetDefault("charts.periods", []string{"1996-2000", "2001-2005", "2006-2010", "2011-2015", "2016-2020", "2021-2024"})
	v.SetDefault("charts.exclude_regions", []string{"Africa"})
	v.SetDefault("charts.recent_years", []int{2023, 2024})
	v.SetDefault("charts.growth_base_year", 2011)
	v.SetDefault("charts.growth_target_year", 2024)
	v.SetDefault("charts.top_n", 10)
	v.SetDefault("charts.race_bars", 15)
	v.SetDefault("charts.race_steps", 10)
	v.SetDefault("charts.race_delay_ms", 100)
	v.SetDefault("charts.width_inches", 14)
	v.SetDefault("charts.height_inches", 8)
	v.SetDefault("charts.palette", DefaultPalette)
	v.SetDefault("charts.concurrency", 4)
	v.SetDefault("spend.costs_file", "raw_data/travel_costs.csv")
	v.SetDefault("spend.stay_days", 9.0)
	v.SetDefault("spend.output", "processed_data/yearly_spend.csv")
	v.SetDefault("fetch.user_agent", "tourism-cli/1.0")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.concurrency", 3)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "processed_data/tourism.db")
	v.SetDefault("store.table", "tourism.visitor_counts")
	v.SetDefault("export.path", "processed_data/tourism.xlsx")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
