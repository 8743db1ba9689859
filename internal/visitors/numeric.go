package visitors

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// DefaultMissingMarkers are the cells spreadsheet and dataframe exports use
// for a missing value. They always apply, whatever else is configured.
var DefaultMissingMarkers = []string{
	"#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// NumberFormat describes how counts are written in the source.
type NumberFormat struct {
	ThousandsSeparators string   // every rune is stripped; default ","
	MissingMarkers      []string // extra markers, matched case-insensitively
}

func (f NumberFormat) separators() string {
	if f.ThousandsSeparators == "" {
		return ","
	}
	return f.ThousandsSeparators
}

func (f NumberFormat) isMissing(s string) bool {
	for _, m := range DefaultMissingMarkers {
		if strings.EqualFold(s, m) {
			return true
		}
	}
	for _, m := range f.MissingMarkers {
		if strings.EqualFold(s, strings.TrimSpace(m)) {
			return true
		}
	}
	return false
}

// ParseCount turns a source cell into a nullable count. Separators are stripped,
// blank and missing-marked cells are nil, anything else must be a finite
// non-negative number and is rounded half to even.
func ParseCount(raw string, f NumberFormat) (*int64, error) {
	s := strings.TrimSpace(raw)
	if seps := f.separators(); strings.ContainsAny(s, seps) {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(seps, r) {
				return -1
			}
			return r
		}, s)
		s = strings.TrimSpace(s)
	}

	if s == "" || f.isMissing(s) {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, eris.Wrapf(ErrParse, "%q is not a number", raw)
	}
	if v < 0 {
		return nil, eris.Wrapf(ErrParse, "%q is negative", raw)
	}

	rounded := math.RoundToEven(v)
	if rounded >= math.MaxInt64 {
		return nil, eris.Wrapf(ErrParse, "%q is out of range", raw)
	}
	n := int64(rounded)
	return &n, nil
}

// parseYear accepts integral years written as "2024" or "2024.0".
func parseYear(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, eris.Wrapf(ErrParse, "year %q is not an integer", raw)
	}
	return int(f), nil
}
