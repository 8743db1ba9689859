package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/tourism-cli/internal/chart"
)

// Raw file names under data.raw_dir.
const (
	travelCostsFile = "travel_costs.csv"
	animeFile       = "Anime_market_stats.csv"
	mangaFile       = "Manga_market_stats .csv"
	sushiFile       = "sushi_restaurants_in_USA.csv"
	motivationFile  = "purpose_of_visit_2024.csv"
	prefectureFile  = "prefecture_visit_rate_2024.csv"
)

// orDefault returns v unless it is empty.
func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func rawPath(name string) string {
	return filepath.Join(cfg.Data.RawDir, name)
}

func chartPath(name string) string {
	return filepath.Join(cfg.Data.VisualizationsDir, name)
}

func chartStyle() (chart.Style, error) {
	s, err := chart.NewStyle(cfg.Charts.Palette, cfg.Charts.WidthInches, cfg.Charts.HeightInches)
	if err != nil {
		return chart.Style{}, eris.Wrap(err, "charts: style")
	}
	return s, nil
}
