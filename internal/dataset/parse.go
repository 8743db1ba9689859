package dataset

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/tourism-cli/internal/fetcher"
)

// normalizeCol strips parentheses and lowercases for column matching.
// "Domestic(USD Million)" → "domesticusd million", "Visit Rate(%)" → "visit rate%"
func normalizeCol(s string) string {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return s
}

// mapColumnsNormalized builds a normalized column name → index map.
func mapColumnsNormalized(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[normalizeCol(col)] = i
	}
	return m
}

// getColN gets a column value by normalized name.
func getColN(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[normalizeCol(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseNumber strips currency, thousands separators, quotes and percent signs.
func parseNumber(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "", `"`, "", "%", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, eris.New("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, eris.Errorf("%q is not a number", s)
	}
	return v, nil
}

// table is a small CSV file addressed by header name.
type table struct {
	path   string
	colIdx map[string]int
	rows   [][]string
}

// readTable loads path and checks that every required column is present.
func readTable(ctx context.Context, path string, required ...string) (*table, error) {
	rows, err := fetcher.ReadCSVFile(ctx, path, fetcher.CSVOptions{})
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read")
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("dataset: %s is empty", path)
	}

	t := &table{path: path, colIdx: mapColumnsNormalized(rows[0]), rows: rows[1:]}
	for _, name := range required {
		if _, ok := t.colIdx[normalizeCol(name)]; !ok {
			return nil, eris.Errorf("dataset: %s has no %q column", path, name)
		}
	}
	return t, nil
}

// each calls fn for every non-blank data row with its 1-based file line.
func (t *table) each(fn func(line int, row []string) error) error {
	for i, row := range t.rows {
		if isBlank(row) {
			continue
		}
		if err := fn(i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) str(row []string, name string) string {
	return getColN(row, t.colIdx, name)
}

func (t *table) float(line int, row []string, name string) (float64, error) {
	v, err := parseNumber(t.str(row, name))
	if err != nil {
		return 0, eris.Wrapf(err, "dataset: %s line %d column %q", t.path, line, name)
	}
	return v, nil
}

func (t *table) int(line int, row []string, name string) (int, error) {
	v, err := t.float(line, row, name)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, eris.Errorf("dataset: %s line %d column %q: %v is not a whole number", t.path, line, name, v)
	}
	return int(v), nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
