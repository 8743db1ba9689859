// Package analysis aggregates cleaned visitor records into the series the
// charts and exports draw from. Null counts contribute zero to every sum.
package analysis

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

// unclassified marks catch-all rows such as "Asia Unclassified".
const unclassified = "Unclassified"

// Filter drops catch-all countries and years after maxYear. maxYear <= 0 keeps every year.
func Filter(records []visitors.Record, maxYear int) []visitors.Record {
	out := make([]visitors.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(r.Country, unclassified) {
			continue
		}
		if maxYear > 0 && r.Year > maxYear {
			continue
		}
		out = append(out, r)
	}
	return out
}

// YearValue is a metric total for one year.
type YearValue struct {
	Year  int
	Value int64
}

// YearlyTotals sums metric per year, ascending.
func YearlyTotals(records []visitors.Record, metric string) []YearValue {
	sums := make(map[int]int64)
	for _, r := range records {
		sums[r.Year] += r.Count(metric)
	}
	out := make([]YearValue, 0, len(sums))
	for y, v := range sums {
		out = append(out, YearValue{Year: y, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Years returns the distinct years present, ascending.
func Years(records []visitors.Record) []int {
	seen := make(map[int]bool)
	var out []int
	for _, r := range records {
		if !seen[r.Year] {
			seen[r.Year] = true
			out = append(out, r.Year)
		}
	}
	sort.Ints(out)
	return out
}

// YearRange is an inclusive span of years labelled "start-end".
type YearRange struct {
	Label string
	Start int
	End   int
}

// Contains reports whether year falls inside the range.
func (p YearRange) Contains(year int) bool { return year >= p.Start && year <= p.End }

// ParsePeriods parses labels such as "1996-2000". A single year is a one-year period.
func ParsePeriods(labels []string) ([]YearRange, error) {
	out := make([]YearRange, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		startS, endS, found := strings.Cut(l, "-")
		if !found {
			endS = startS
		}
		start, err := strconv.Atoi(strings.TrimSpace(startS))
		if err != nil {
			return nil, eris.Errorf("analysis: bad period %q", l)
		}
		end, err := strconv.Atoi(strings.TrimSpace(endS))
		if err != nil {
			return nil, eris.Errorf("analysis: bad period %q", l)
		}
		if end < start {
			return nil, eris.Errorf("analysis: period %q ends before it starts", l)
		}
		out = append(out, YearRange{Label: l, Start: start, End: end})
	}
	return out, nil
}

// YearSet turns a list of years into a lookup set.
func YearSet(years ...int) map[int]bool {
	m := make(map[int]bool, len(years))
	for _, y := range years {
		m[y] = true
	}
	return m
}

// YearsBetween returns start..end inclusive.
func YearsBetween(start, end int) []int {
	var out []int
	for y := start; y <= end; y++ {
		out = append(out, y)
	}
	return out
}
