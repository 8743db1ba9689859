package analysis

import (
	"math"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

// MonthlyGrid holds each month's share of its year's metric total.
// Percent[i][m] belongs to Years[i] and month m+1; cells without data are NaN.
type MonthlyGrid struct {
	Years   []int
	Months  []string
	Percent [][]float64
}

// MonthlyDistribution computes per-year monthly shares, skipping excluded
// years. Full and abbreviated month names are merged; other labels are dropped.
func MonthlyDistribution(records []visitors.Record, metric string, exclude map[int]bool) MonthlyGrid {
	type cell struct{ year, month int }
	sums := make(map[cell]int64)
	present := make(map[cell]bool)
	yearTotals := make(map[int]int64)

	for _, r := range records {
		if exclude[r.Year] {
			continue
		}
		m, ok := visitors.MonthNumber(r.Month)
		if !ok {
			continue
		}
		c := cell{r.Year, m}
		v := r.Count(metric)
		sums[c] += v
		present[c] = true
		yearTotals[r.Year] += v
	}

	grid := MonthlyGrid{Months: visitors.MonthAbbrevs}
	for _, y := range sortedKeys(yearTotals) {
		row := make([]float64, 12)
		for m := 1; m <= 12; m++ {
			c := cell{y, m}
			if !present[c] || yearTotals[y] == 0 {
				row[m-1] = math.NaN()
				continue
			}
			row[m-1] = float64(sums[c]) / float64(yearTotals[y]) * 100
		}
		grid.Years = append(grid.Years, y)
		grid.Percent = append(grid.Percent, row)
	}
	return grid
}
