package visitors

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// MonthOrder selects how month strings are ordered in the output.
type MonthOrder string

const (
	// MonthOrderLexical sorts month strings as plain strings.
	MonthOrderLexical MonthOrder = "lexical"
	// MonthOrderCalendar sorts recognised months January first, others after December.
	MonthOrderCalendar MonthOrder = "calendar"
)

// Options tune the reshape.
type Options struct {
	Format     NumberFormat
	MonthOrder MonthOrder
}

// Summary counts what a reshape saw and produced.
type Summary struct {
	SourceRows        int      // data rows read, blank rows excluded
	ValueColumns      int      // (country, category) columns
	LongRows          int      // rows of the unpivoted table
	Records           int      // cleaned records
	DroppedCategories []string // category labels outside the rename table
}

// cellRef is one unpivoted cell: (year, month, country, category, value).
type cellRef struct {
	line     int
	year     int
	month    string
	country  string
	category string
	raw      string
}

type key struct {
	year    int
	month   string
	country string
}

// group collects the first non-blank value per category for one key.
type group struct {
	key    key
	values map[string]cellRef
}

// Reshape turns the raw two-header table into cleaned records. rows holds the
// file as read, header rows included. Nothing is returned on error.
func Reshape(rows [][]string, opts Options) ([]Record, Summary, error) {
	var sum Summary

	l, err := parseHeader(rows)
	if err != nil {
		return nil, sum, err
	}
	sum.ValueColumns = len(l.values)

	long, n, err := unpivot(l, rows[headerRows:])
	if err != nil {
		return nil, sum, err
	}
	sum.SourceRows = n
	sum.LongRows = len(long)

	groups := repivot(long)
	sum.DroppedCategories = droppedCategories(l)

	records := make([]Record, 0, len(groups))
	for _, g := range groups {
		rec := Record{
			Year:    g.key.year,
			Month:   g.key.month,
			Country: g.key.country,
			Region:  RegionOf(g.key.country),
		}
		for _, label := range categoryLabels {
			c, ok := g.values[label]
			if !ok {
				continue
			}
			column := categoryColumns[label]
			v, err := ParseCount(c.raw, opts.Format)
			if err != nil {
				return nil, sum, &StageError{
					Stage:  StageNormalize,
					Line:   c.line,
					Column: c.country + "/" + c.category,
					Err:    err,
				}
			}
			rec.set(column, v)
		}
		records = append(records, rec)
	}

	sortRecords(records, opts.MonthOrder)
	sum.Records = len(records)
	return records, sum, nil
}

// unpivot emits one cellRef per value column for every data row. Blank years
// carry the previous row's year; fully blank rows are skipped.
func unpivot(l *layout, data [][]string) ([]cellRef, int, error) {
	long := make([]cellRef, 0, len(data)*len(l.values))
	var (
		rowsSeen int
		lastYear int
		haveYear bool
	)

	for i, row := range data {
		line := headerRows + i + 1
		if blankRow(row) {
			continue
		}
		rowsSeen++

		if len(row) > l.width && !blankRow(row[l.width:]) {
			return nil, 0, shapeError(line, "row has %d cells, header has %d", len(row), l.width)
		}

		yearCell := strings.TrimSpace(cell(row, l.yearCol))
		switch {
		case yearCell != "":
			y, err := parseYear(yearCell)
			if err != nil {
				return nil, 0, &StageError{Stage: StageUnpivot, Line: line, Column: "Year", Err: err}
			}
			lastYear, haveYear = y, true
		case !haveYear:
			return nil, 0, shapeError(line, "first data row has no year")
		}

		month := strings.TrimSpace(cell(row, l.monthCol))
		if month == "" {
			return nil, 0, shapeError(line, "row has no month")
		}

		for _, vc := range l.values {
			long = append(long, cellRef{
				line:     line,
				year:     lastYear,
				month:    month,
				country:  vc.country,
				category: vc.category,
				raw:      cell(row, vc.index),
			})
		}
	}

	return long, rowsSeen, nil
}

// repivot groups the long table by (year, month, country). Every key seen gets
// a group even when all of its cells are blank.
func repivot(long []cellRef) []*group {
	index := make(map[key]*group)
	var groups []*group
	for _, c := range long {
		k := key{year: c.year, month: c.month, country: c.country}
		g, ok := index[k]
		if !ok {
			g = &group{key: k, values: make(map[string]cellRef)}
			index[k] = g
			groups = append(groups, g)
		}
		if _, seen := g.values[c.category]; seen {
			continue
		}
		if strings.TrimSpace(c.raw) == "" {
			continue
		}
		g.values[c.category] = c
	}
	return groups
}

func droppedCategories(l *layout) []string {
	seen := make(map[string]bool)
	var out []string
	for _, vc := range l.values {
		if _, ok := categoryColumns[vc.category]; ok || seen[vc.category] {
			continue
		}
		seen[vc.category] = true
		out = append(out, vc.category)
	}
	sort.Strings(out)
	return out
}

func sortRecords(records []Record, order MonthOrder) {
	less := func(a, b string) bool { return a < b }
	if order == MonthOrderCalendar {
		less = calendarLess
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return less(a.Month, b.Month)
		}
		return a.Country < b.Country
	})
}

func calendarLess(a, b string) bool {
	na, oka := MonthNumber(a)
	nb, okb := MonthNumber(b)
	switch {
	case oka && okb && na != nb:
		return na < nb
	case oka != okb:
		return oka
	}
	return a < b
}

// ParseMonthOrder validates a configured month order; empty means lexical.
func ParseMonthOrder(s string) (MonthOrder, error) {
	switch MonthOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", MonthOrderLexical:
		return MonthOrderLexical, nil
	case MonthOrderCalendar:
		return MonthOrderCalendar, nil
	}
	return "", eris.Errorf("visitors: unknown month order %q", s)
}
