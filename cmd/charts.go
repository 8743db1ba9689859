package main

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/tourism-cli/internal/analysis"
	"github.com/sells-group/tourism-cli/internal/chart"
	"github.com/sells-group/tourism-cli/internal/visitors"
)

var (
	chartsInput       string
	chartsMetric      string
	chartsOutDir      string
	chartsConcurrency int
	chartsNoAnimation bool
)

// regionColors mixes the palette's blues, greys and reds for the stacked chart.
var regionColors = []string{"#2066a8", "#8ec1da", "#ededed", "#f6d6c2", "#ae282c"}

// chartJob renders one chart file.
type chartJob struct {
	name   string
	render func() error
}

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the visitor charts from the cleaned table",
	Long: `Reads the cleaned visitor CSV and renders the yearly total line, the regional
share stacked bars, the top countries and highest growth bars, the monthly
distribution heatmap and the animated bar chart race.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg.Charts.Metric = orDefault(chartsMetric, cfg.Charts.Metric)
		cfg.Data.VisualizationsDir = orDefault(chartsOutDir, cfg.Data.VisualizationsDir)
		if chartsConcurrency > 0 {
			cfg.Charts.Concurrency = chartsConcurrency
		}
		if err := cfg.Validate("charts"); err != nil {
			return err
		}

		input := orDefault(chartsInput, cfg.Clean.Output)
		records, err := visitors.ReadFile(input)
		if err != nil {
			return eris.Wrap(err, "charts: read cleaned table")
		}
		records = analysis.Filter(records, cfg.Charts.MaxYear)

		style, err := chartStyle()
		if err != nil {
			return err
		}
		jobs, err := visitorCharts(style, records)
		if err != nil {
			return err
		}

		log := zap.L().With(zap.String("command", "charts"))
		var g errgroup.Group
		g.SetLimit(cfg.Charts.Concurrency)
		for _, job := range jobs {
			g.Go(func() error {
				if err := job.render(); err != nil {
					return eris.Wrapf(err, "charts: %s", job.name)
				}
				log.Info("chart written", zap.String("path", chartPath(job.name)))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("Rendered %d charts into %s\n", len(jobs), cfg.Data.VisualizationsDir)
		return nil
	},
}

// visitorCharts builds the render jobs for records, which must already be filtered.
func visitorCharts(style chart.Style, records []visitors.Record) ([]chartJob, error) {
	c := cfg.Charts
	metric := c.Metric
	covid := analysis.YearSet(analysis.YearsBetween(c.CovidStart, c.CovidEnd)...)

	periods, err := analysis.ParsePeriods(c.Periods)
	if err != nil {
		return nil, err
	}
	mixed, err := chart.ParsePalette(regionColors)
	if err != nil {
		return nil, err
	}
	high, err := chart.ParseHex(c.Palette[0])
	if err != nil {
		return nil, err
	}

	years := analysis.Years(records)
	span := ""
	if len(years) > 0 {
		span = fmt.Sprintf(" (%d-%d)", years[0], years[len(years)-1])
	}

	jobs := []chartJob{
		{"total_visitors_growth.png", func() error {
			var pts []chart.Point
			for _, yv := range analysis.YearlyTotals(records, metric) {
				pts = append(pts, chart.Point{X: float64(yv.Year), Y: float64(yv.Value) / 1e6})
			}
			return style.Line(chartPath("total_visitors_growth.png"), chart.LineChart{
				Title:  "Japan Tourism: Total Tourists" + span,
				XLabel: "Year",
				YLabel: "Total Tourists (In Millions)",
				Series: []chart.Series{{Name: metric, Points: pts}},
				Band:   &chart.Band{Label: "COVID Period", Start: float64(c.CovidStart), End: float64(c.CovidEnd)},
				Single: true,
			})
		}},
		{"regional_distribution_maps.png", func() error {
			shares := analysis.RegionalShare(records, metric, periods, c.ExcludeRegions)
			if len(shares.Periods) == 0 {
				zap.L().Warn("charts: no data inside the configured periods")
				return nil
			}
			var colors []color.Color
			if len(shares.Regions) <= len(mixed) {
				colors = mixed[:len(shares.Regions)]
			}
			note := ""
			if len(c.ExcludeRegions) > 0 {
				note = fmt.Sprintf("Note: %s excluded due to negligible percentage.", strings.Join(c.ExcludeRegions, ", "))
			}
			return style.StackedBars(chartPath("regional_distribution_maps.png"), chart.StackedChart{
				Title:  "Breakdown of Tourists by Region",
				XLabel: "Period",
				YLabel: "Percentage of Tourists (%)",
				Groups: shares.Periods,
				Stacks: shares.Regions,
				Values: shares.Percent,
				Colors: colors,
				Note:   note,
			})
		}},
		{"top_10_countries.png", func() error {
			top := analysis.TopCountries(records, metric, c.RecentYears, c.TopN)
			if len(top) == 0 {
				zap.L().Warn("charts: no countries in the recent years", zap.Ints("years", c.RecentYears))
				return nil
			}
			bars := make([]chart.Bar, len(top))
			for i, t := range top {
				bars[i] = chart.Bar{Label: t.Country, Value: float64(t.Total), Text: chart.Millions(float64(t.Total))}
			}
			return style.HorizontalBars(chartPath("top_10_countries.png"), chart.BarChart{
				Title:  fmt.Sprintf("Top %d Countries by Tourist Visitors to Japan (%s)", c.TopN, yearsLabel(c.RecentYears)),
				XLabel: "Total Tourists (In Millions)",
				YLabel: "Country",
				Bars:   bars,
				Format: chart.Millions,
			})
		}},
		{"top_10_highest_growth.png", func() error {
			growth := analysis.Growth(records, metric, c.GrowthBaseYear, c.GrowthTargetYear, c.TopN)
			if len(growth) == 0 {
				zap.L().Warn("charts: no country has both growth years",
					zap.Int("base", c.GrowthBaseYear), zap.Int("target", c.GrowthTargetYear))
				return nil
			}
			bars := make([]chart.Bar, len(growth))
			for i, g := range growth {
				bars[i] = chart.Bar{Label: g.Country, Value: g.Percent, Text: fmt.Sprintf("%d%%", int(math.Round(g.Percent)))}
			}
			return style.HorizontalBars(chartPath("top_10_highest_growth.png"), chart.BarChart{
				Title:  fmt.Sprintf("Top %d Countries with Highest Growth (%d vs %d)", c.TopN, c.GrowthBaseYear, c.GrowthTargetYear),
				XLabel: "Growth Percentage (%)",
				YLabel: "Country",
				Bars:   bars,
			})
		}},
		{"monthly_distribution_heatmap.png", func() error {
			grid := analysis.MonthlyDistribution(records, metric, covid)
			rows := make([]string, len(grid.Years))
			for i, y := range grid.Years {
				rows[i] = strconv.Itoa(y)
			}
			return style.Heatmap(chartPath("monthly_distribution_heatmap.png"), chart.HeatmapChart{
				Title:   "Monthly Distribution of Tourists as % of Annual Total",
				XLabel:  "Month",
				YLabel:  "Year",
				Columns: grid.Months,
				Rows:    rows,
				Values:  grid.Percent,
				Low:     color.RGBA{R: 0xf0, G: 0xf4, B: 0xf8, A: 255},
				High:    high,
			})
		}},
	}

	if !chartsNoAnimation {
		jobs = append(jobs, chartJob{"top_15_countries_barchart_race.gif", func() error {
			frames := analysis.RaceFrames(records, metric, covid, c.RaceBars, c.RaceSteps)
			return style.RaceGIF(chartPath("top_15_countries_barchart_race.gif"), chart.RaceChart{
				Title:   fmt.Sprintf("Top %d Countries by Tourism Visitors to Japan%s\nExcluding Covid Era (%d-%d)", c.RaceBars, span, c.CovidStart, c.CovidEnd),
				XLabel:  "Tourists",
				Frames:  frames,
				DelayMS: c.RaceDelayMS,
			})
		}})
	}
	return jobs, nil
}

// yearsLabel prints consecutive years as "2023-2024".
func yearsLabel(years []int) string {
	if len(years) == 0 {
		return ""
	}
	if len(years) == 1 {
		return strconv.Itoa(years[0])
	}
	return fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
}

func init() {
	chartsCmd.Flags().StringVar(&chartsInput, "input", "", "cleaned visitor CSV; defaults to clean.output")
	chartsCmd.Flags().StringVar(&chartsMetric, "metric", "", "count column to chart; overrides charts.metric")
	chartsCmd.Flags().StringVar(&chartsOutDir, "out-dir", "", "chart directory; overrides data.visualizations_dir")
	chartsCmd.Flags().IntVar(&chartsConcurrency, "concurrency", 0, "parallel renders; overrides charts.concurrency")
	chartsCmd.Flags().BoolVar(&chartsNoAnimation, "no-animation", false, "skip the bar chart race GIF")
	rootCmd.AddCommand(chartsCmd)
}
