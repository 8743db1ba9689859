package analysis

import (
	"sort"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

// RegionalShares is the metric split by region within each period.
// Percent[i][j] is the share of Regions[j] in Periods[i]; each row sums to 100
// unless the period total is zero.
type RegionalShares struct {
	Periods []string
	Regions []string
	Totals  [][]int64
	Percent [][]float64
}

// RegionalShare sums metric per (period, region), leaving out excluded regions.
// Only periods that contain records are reported; regions are sorted.
func RegionalShare(records []visitors.Record, metric string, periods []YearRange, exclude []string) RegionalShares {
	skip := make(map[string]bool, len(exclude))
	for _, r := range exclude {
		skip[r] = true
	}

	type cell struct {
		period int
		region string
	}
	sums := make(map[cell]int64)
	seenPeriod := make(map[int]bool)
	seenRegion := make(map[string]bool)

	for _, r := range records {
		if skip[r.Region] {
			continue
		}
		p := periodIndex(periods, r.Year)
		if p < 0 {
			continue
		}
		seenPeriod[p] = true
		seenRegion[r.Region] = true
		sums[cell{p, r.Region}] += r.Count(metric)
	}

	var out RegionalShares
	for r := range seenRegion {
		out.Regions = append(out.Regions, r)
	}
	sort.Strings(out.Regions)

	for p, period := range periods {
		if !seenPeriod[p] {
			continue
		}
		totals := make([]int64, len(out.Regions))
		var periodTotal int64
		for j, region := range out.Regions {
			totals[j] = sums[cell{p, region}]
			periodTotal += totals[j]
		}
		pct := make([]float64, len(out.Regions))
		if periodTotal > 0 {
			for j, v := range totals {
				pct[j] = float64(v) / float64(periodTotal) * 100
			}
		}
		out.Periods = append(out.Periods, period.Label)
		out.Totals = append(out.Totals, totals)
		out.Percent = append(out.Percent, pct)
	}
	return out
}

func periodIndex(periods []YearRange, year int) int {
	for i, p := range periods {
		if p.Contains(year) {
			return i
		}
	}
	return -1
}
