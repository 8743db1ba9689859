package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/tourism-cli/internal/chart"
	"github.com/sells-group/tourism-cli/internal/dataset"
)

var costsInput string

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Chart the CPI adjusted daily spend per country",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		input := orDefault(costsInput, cfg.Spend.CostsFile)
		costs, err := dataset.LoadTravelCosts(ctx, input)
		if err != nil {
			return eris.Wrap(err, "costs")
		}

		style, err := chartStyle()
		if err != nil {
			return err
		}

		var series []chart.Series
		lo, hi := 0, 0
		for _, cs := range dataset.SeriesByCountry(costs) {
			s := chart.Series{Name: cs.Country}
			for _, p := range cs.Points {
				s.Points = append(s.Points, chart.Point{X: float64(p.Year), Y: p.DailySpend})
				if lo == 0 || p.Year < lo {
					lo = p.Year
				}
				if p.Year > hi {
					hi = p.Year
				}
			}
			series = append(series, s)
		}

		path := chartPath("travel_costs_cpi_adjusted.png")
		if err := style.Line(path, chart.LineChart{
			Title:  fmt.Sprintf("Inflation Adjusted Daily Spend by Country (%d-%d)", lo, hi),
			XLabel: "Year",
			YLabel: "Inflation Adjusted Daily Spend (USD)",
			Series: series,
		}); err != nil {
			return eris.Wrap(err, "costs: render")
		}

		fmt.Printf("Charted %d countries: %s\n", len(series), path)
		return nil
	},
}

func init() {
	costsCmd.Flags().StringVar(&costsInput, "input", "", "travel costs CSV; defaults to spend.costs_file")
	rootCmd.AddCommand(costsCmd)
}
