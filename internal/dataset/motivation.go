package dataset

import (
	"context"
	"sort"
)

// DefaultQuestion is the survey question the motivation chart reports on.
const DefaultQuestion = "What did you do during your current stay in Japan?"

// Motivation is one survey answer and the share of respondents who gave it.
type Motivation struct {
	Activity string
	Question string
	Ratio    float64
}

// LoadMotivations reads purpose_of_visit (Item1, Item2, Composition ratio).
func LoadMotivations(ctx context.Context, path string) ([]Motivation, error) {
	t, err := readTable(ctx, path, "Item1", "Item2", "Composition ratio")
	if err != nil {
		return nil, err
	}

	var out []Motivation
	err = t.each(func(line int, row []string) error {
		ratio, err := t.float(line, row, "Composition ratio")
		if err != nil {
			return err
		}
		out = append(out, Motivation{
			Activity: t.str(row, "Item1"),
			Question: t.str(row, "Item2"),
			Ratio:    ratio,
		})
		return nil
	})
	return out, err
}

// TopMotivations returns the n answers to question with the highest ratio,
// highest first. An empty question means DefaultQuestion.
func TopMotivations(all []Motivation, question string, n int) []Motivation {
	if question == "" {
		question = DefaultQuestion
	}
	var out []Motivation
	for _, m := range all {
		if m.Question == question {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio > out[j].Ratio })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
