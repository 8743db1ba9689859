package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tourism-cli/internal/chart"
	"github.com/sells-group/tourism-cli/internal/dataset"
)

var marketsRawDir string

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "Chart the anime, manga and US sushi restaurant growth series",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg.Data.RawDir = orDefault(marketsRawDir, cfg.Data.RawDir)

		style, err := chartStyle()
		if err != nil {
			return err
		}

		for _, render := range []func(context.Context, chart.Style) (string, error){
			animeChart, mangaChart, sushiChart,
		} {
			path, err := render(ctx, style)
			if err != nil {
				return eris.Wrap(err, "markets")
			}
			zap.L().Info("chart written", zap.String("path", path))
		}

		fmt.Printf("Rendered 3 market charts into %s\n", cfg.Data.VisualizationsDir)
		return nil
	},
}

// firstLast picks the first and last palette colours for two-series charts.
func firstLast(s chart.Style) []color.Color {
	return []color.Color{s.Palette[0], s.Palette[len(s.Palette)-1]}
}

func animeChart(ctx context.Context, style chart.Style) (string, error) {
	rows, err := dataset.LoadAnimeMarket(ctx, rawPath(animeFile))
	if err != nil {
		return "", err
	}
	domestic := chart.Series{Name: "Domestic Market Size (USD Billion)"}
	overseas := chart.Series{Name: "Overseas Market Size (USD Billion)"}
	for _, r := range rows {
		domestic.Points = append(domestic.Points, chart.Point{X: float64(r.Year), Y: dataset.Billions(r.Domestic)})
		overseas.Points = append(overseas.Points, chart.Point{X: float64(r.Year), Y: dataset.Billions(r.Overseas)})
	}
	path := chartPath("anime_market_growth.png")
	return path, style.Line(path, chart.LineChart{
		Title:  "Anime Market Growth (Domestic vs Overseas)",
		XLabel: "Year",
		YLabel: "Market Size (USD Billion)",
		Series: []chart.Series{domestic, overseas},
		Colors: firstLast(style),
	})
}

func mangaChart(ctx context.Context, style chart.Style) (string, error) {
	rows, err := dataset.LoadMangaMarket(ctx, rawPath(mangaFile))
	if err != nil {
		return "", err
	}
	total := chart.Series{Name: "Market Size (USD Billion)"}
	for _, r := range rows {
		total.Points = append(total.Points, chart.Point{X: float64(r.Year), Y: dataset.Billions(r.Total)})
	}
	path := chartPath("manga_market_growth.png")
	return path, style.Line(path, chart.LineChart{
		Title:  "Manga Market Growth (Forecast)",
		XLabel: "Year",
		YLabel: "Market Size (USD Billion)",
		Series: []chart.Series{total},
		Colors: firstLast(style)[:1],
	})
}

func sushiChart(ctx context.Context, style chart.Style) (string, error) {
	rows, err := dataset.LoadSushiCounts(ctx, rawPath(sushiFile))
	if err != nil {
		return "", err
	}
	count := chart.Series{Name: "Number of Restaurants"}
	for _, r := range rows {
		count.Points = append(count.Points, chart.Point{X: float64(r.Year), Y: float64(r.Businesses)})
	}
	path := chartPath("sushi_restaurants_growth.png")
	return path, style.Line(path, chart.LineChart{
		Title:  "Growth of Sushi Restaurants in USA",
		XLabel: "Year",
		YLabel: "Number of Businesses",
		Series: []chart.Series{count},
		Colors: firstLast(style)[1:],
	})
}

func init() {
	marketsCmd.Flags().StringVar(&marketsRawDir, "raw-dir", "", "directory holding the market CSVs; overrides data.raw_dir")
	rootCmd.AddCommand(marketsCmd)
}
