package dataset

import (
	"context"
	"sort"
)

// PrefectureVisit is the share of visitors who went to a prefecture.
type PrefectureVisit struct {
	Prefecture string
	Rate       float64
}

// LoadPrefectureVisits reads Prefecture, Visit Rate(%).
func LoadPrefectureVisits(ctx context.Context, path string) ([]PrefectureVisit, error) {
	t, err := readTable(ctx, path, "Prefecture", "Visit Rate(%)")
	if err != nil {
		return nil, err
	}

	var out []PrefectureVisit
	err = t.each(func(line int, row []string) error {
		rate, err := t.float(line, row, "Visit Rate(%)")
		if err != nil {
			return err
		}
		out = append(out, PrefectureVisit{Prefecture: t.str(row, "Prefecture"), Rate: rate})
		return nil
	})
	return out, err
}

// TopPrefectures returns the n most visited prefectures, highest rate first.
func TopPrefectures(all []PrefectureVisit, n int) []PrefectureVisit {
	out := append([]PrefectureVisit(nil), all...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate > out[j].Rate })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
