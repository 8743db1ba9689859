package visitors

import "strings"

// valueColumn is one (country, category) column of the raw table.
type valueColumn struct {
	index    int
	country  string
	category string
}

// layout is the parsed two-row header.
type layout struct {
	width    int
	yearCol  int
	monthCol int
	values   []valueColumn
}

// headerRows is the number of header rows in the raw table.
const headerRows = 2

// parseHeader reads the country row and the category row. The identifying
// columns are found by their category label; blank country cells over value
// columns take the country to their left, as spreadsheet exports leave merged
// cells blank.
func parseHeader(rows [][]string) (*layout, error) {
	if len(rows) < headerRows {
		return nil, shapeError(0, "expected %d header rows, got %d", headerRows, len(rows))
	}

	countryRow, categoryRow := rows[0], rows[1]
	width := max(len(countryRow), len(categoryRow))
	if width == 0 {
		return nil, shapeError(1, "header rows are empty")
	}

	l := &layout{width: width, yearCol: -1, monthCol: -1}
	for i := 0; i < width; i++ {
		label := cleanHeader(cell(categoryRow, i))
		switch {
		case strings.EqualFold(label, "Year") && l.yearCol < 0:
			l.yearCol = i
		case strings.EqualFold(label, "Month") && l.monthCol < 0:
			l.monthCol = i
		}
	}
	if l.yearCol < 0 {
		return nil, shapeError(2, "no Year column in category header")
	}
	if l.monthCol < 0 {
		return nil, shapeError(2, "no Month column in category header")
	}

	lastCountry := ""
	for i := 0; i < width; i++ {
		if i == l.yearCol || i == l.monthCol {
			continue
		}
		country := cleanHeader(cell(countryRow, i))
		if country == "" {
			country = lastCountry
		}
		if country == "" {
			return nil, shapeError(1, "column %d has no country", i+1)
		}
		lastCountry = country
		l.values = append(l.values, valueColumn{
			index:    i,
			country:  country,
			category: cleanHeader(cell(categoryRow, i)),
		})
	}

	return l, nil
}

func cleanHeader(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
