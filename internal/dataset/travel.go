// Package dataset loads the auxiliary tables that sit beside the visitor
// counts: travel costs, cultural export markets, visit motivations and
// prefecture visit rates.
package dataset

import (
	"context"
	"sort"
)

// TravelCost is the CPI adjusted daily spend (USD) of a visitor from Country in Year.
type TravelCost struct {
	Year       int     `csv:"year"`
	Country    string  `csv:"country"`
	DailySpend float64 `csv:"daily_spend"`
}

// CostSeries is one country's travel costs in year order.
type CostSeries struct {
	Country string
	Points  []TravelCost
}

// LoadTravelCosts reads travel_costs.csv (Year, Country, CPI_adjusted_daily_spend).
func LoadTravelCosts(ctx context.Context, path string) ([]TravelCost, error) {
	t, err := readTable(ctx, path, "Year", "Country", "CPI_adjusted_daily_spend")
	if err != nil {
		return nil, err
	}

	var out []TravelCost
	err = t.each(func(line int, row []string) error {
		year, err := t.int(line, row, "Year")
		if err != nil {
			return err
		}
		spend, err := t.float(line, row, "CPI_adjusted_daily_spend")
		if err != nil {
			return err
		}
		out = append(out, TravelCost{Year: year, Country: t.str(row, "Country"), DailySpend: spend})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SeriesByCountry groups costs per country, countries in first appearance
// order and points sorted by year.
func SeriesByCountry(costs []TravelCost) []CostSeries {
	index := make(map[string]int)
	var out []CostSeries
	for _, c := range costs {
		i, ok := index[c.Country]
		if !ok {
			i = len(out)
			index[c.Country] = i
			out = append(out, CostSeries{Country: c.Country})
		}
		out[i].Points = append(out[i].Points, c)
	}
	for _, s := range out {
		sort.SliceStable(s.Points, func(a, b int) bool { return s.Points[a].Year < s.Points[b].Year })
	}
	return out
}
