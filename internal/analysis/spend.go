package analysis

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/tourism-cli/internal/dataset"
	"github.com/sells-group/tourism-cli/internal/visitors"
)

// YearlySpend estimates what visitors from one country spent in one year.
type YearlySpend struct {
	Year       int     `csv:"year"`
	Country    string  `csv:"country"`
	Visitors   int64   `csv:"visitors"`
	DailySpend float64 `csv:"daily_spend"`
	StayDays   float64 `csv:"stay_days"`
	Spend      float64 `csv:"spend"`
}

// SpendSummary is the estimated spend of all matched countries in one year.
type SpendSummary struct {
	Year  int
	Spend float64
}

// EstimateSpend joins yearly total visitors with the travel-cost table on
// (year, country). Pairs missing from either side are dropped. Rows are
// sorted by year then country.
func EstimateSpend(records []visitors.Record, costs []dataset.TravelCost, stayDays float64) []YearlySpend {
	type key struct {
		year    int
		country string
	}
	counts := make(map[key]int64)
	for _, r := range records {
		counts[key{r.Year, r.Country}] += r.Count("total")
	}

	seen := make(map[key]bool)
	var out []YearlySpend
	for _, c := range costs {
		k := key{c.Year, c.Country}
		n, ok := counts[k]
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, YearlySpend{
			Year:       c.Year,
			Country:    c.Country,
			Visitors:   n,
			DailySpend: c.DailySpend,
			StayDays:   stayDays,
			Spend:      float64(n) * c.DailySpend * stayDays,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// SpendByYear totals estimated spend per year, ascending.
func SpendByYear(rows []YearlySpend) []SpendSummary {
	var out []SpendSummary
	for _, r := range rows {
		if len(out) == 0 || out[len(out)-1].Year != r.Year {
			out = append(out, SpendSummary{Year: r.Year})
		}
		out[len(out)-1].Spend += r.Spend
	}
	return out
}

// WriteSpendCSV encodes spend rows with a header line.
func WriteSpendCSV(w io.Writer, rows []YearlySpend) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	var err error
	if len(rows) == 0 {
		err = enc.EncodeHeader(YearlySpend{})
	} else {
		err = enc.Encode(rows)
	}
	if err != nil {
		return eris.Wrap(err, "analysis: encode spend")
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "analysis: flush spend")
}
