// Package geo reads the prefecture boundaries used by the visit-rate map and
// matches survey prefecture names to them.
package geo

import "strings"

// gadmNames maps survey prefecture labels to GADM level-1 NAME_1 values where
// stripping the " Prefecture" suffix is not enough.
var gadmNames = map[string]string{
	"Hyogo Prefecture": "Hyōgo",
	"Hyogo":            "Hyōgo",
}

const prefectureSuffix = " prefecture"

// GADMName returns the shapefile name for a survey prefecture label such as
// "Chiba Prefecture" or "Kagoshima prefecture".
func GADMName(survey string) string {
	s := strings.TrimSpace(survey)
	if n, ok := gadmNames[s]; ok {
		return n
	}
	if len(s) > len(prefectureSuffix) && strings.EqualFold(s[len(s)-len(prefectureSuffix):], prefectureSuffix) {
		s = strings.TrimSpace(s[:len(s)-len(prefectureSuffix)])
	}
	if n, ok := gadmNames[s]; ok {
		return n
	}
	return s
}
