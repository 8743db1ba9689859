package analysis

import (
	"sort"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

// CountryTotal is a metric total for one country.
type CountryTotal struct {
	Country string
	Total   int64
}

// CountryGrowth compares one country's totals in two years.
type CountryGrowth struct {
	Country string
	Base    int64
	Target  int64
	Percent float64
}

// countryTotals sums metric per country over the years accepted by keep.
func countryTotals(records []visitors.Record, metric string, keep func(year int) bool) map[string]int64 {
	sums := make(map[string]int64)
	for _, r := range records {
		if keep(r.Year) {
			sums[r.Country] += r.Count(metric)
		}
	}
	return sums
}

// TopCountries returns the n countries with the largest metric total over
// years, largest first. Ties go to the alphabetically first country.
func TopCountries(records []visitors.Record, metric string, years []int, n int) []CountryTotal {
	set := YearSet(years...)
	sums := countryTotals(records, metric, func(y int) bool { return set[y] })

	out := make([]CountryTotal, 0, len(sums))
	for c, v := range sums {
		out = append(out, CountryTotal{Country: c, Total: v})
	}
	sortCountryTotals(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Growth ranks countries present in both years by percent change from base
// to target, largest first. Countries with a zero base are left out.
func Growth(records []visitors.Record, metric string, base, target, n int) []CountryGrowth {
	baseSums := countryTotals(records, metric, func(y int) bool { return y == base })
	targetSums := countryTotals(records, metric, func(y int) bool { return y == target })

	var out []CountryGrowth
	for c, b := range baseSums {
		t, ok := targetSums[c]
		if !ok || b == 0 {
			continue
		}
		out = append(out, CountryGrowth{
			Country: c,
			Base:    b,
			Target:  t,
			Percent: float64(t-b) / float64(b) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percent != out[j].Percent {
			return out[i].Percent > out[j].Percent
		}
		return out[i].Country < out[j].Country
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func sortCountryTotals(s []CountryTotal) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Total != s[j].Total {
			return s[i].Total > s[j].Total
		}
		return s[i].Country < s[j].Country
	})
}
