package visitors

import "strings"

// MonthAbbrevs are the month labels used by the charts, January first.
var MonthAbbrevs = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var monthNumbers = func() map[string]int {
	full := []string{"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december"}
	m := make(map[string]int, 24)
	for i, name := range full {
		m[name] = i + 1
		m[strings.ToLower(MonthAbbrevs[i])] = i + 1
	}
	return m
}()

// MonthNumber maps a full or three-letter month name to 1..12.
func MonthNumber(month string) (int, bool) {
	n, ok := monthNumbers[strings.ToLower(strings.TrimSpace(month))]
	return n, ok
}

// MonthAbbrev normalizes a month name to its three-letter label.
func MonthAbbrev(month string) (string, bool) {
	n, ok := MonthNumber(month)
	if !ok {
		return "", false
	}
	return MonthAbbrevs[n-1], true
}
