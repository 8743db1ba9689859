package analysis

import (
	"sort"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

// RaceBar is one bar of a race frame.
type RaceBar struct {
	Country string
	Value   float64
}

// RaceFrame is one frame of the bar chart race: the leading countries at a
// point between two years.
type RaceFrame struct {
	Year     int     // year the frame starts from
	Progress float64 // 0 at Year, approaching 1 at the next year
	Bars     []RaceBar
}

// RaceFrames builds the animation frames of the yearly country totals, with
// excluded years removed and every country zero-filled in years it is absent.
// Between consecutive years steps frames are interpolated linearly; each frame
// keeps the top n bars, largest first.
func RaceFrames(records []visitors.Record, metric string, exclude map[int]bool, n, steps int) []RaceFrame {
	if steps < 1 {
		steps = 1
	}

	byYear := make(map[int]map[string]int64)
	countrySet := make(map[string]bool)
	for _, r := range records {
		if exclude[r.Year] {
			continue
		}
		m, ok := byYear[r.Year]
		if !ok {
			m = make(map[string]int64)
			byYear[r.Year] = m
		}
		m[r.Country] += r.Count(metric)
		countrySet[r.Country] = true
	}
	if len(byYear) == 0 {
		return nil
	}

	countries := make([]string, 0, len(countrySet))
	for c := range countrySet {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	years := sortedKeys(byYear)
	values := make([][]float64, len(years))
	for i, y := range years {
		values[i] = make([]float64, len(countries))
		for j, c := range countries {
			values[i][j] = float64(byYear[y][c])
		}
	}

	var frames []RaceFrame
	for i, y := range years {
		if i == len(years)-1 {
			frames = append(frames, makeFrame(y, 0, countries, values[i], n))
			break
		}
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps)
			cur := make([]float64, len(countries))
			for j := range countries {
				cur[j] = values[i][j] + (values[i+1][j]-values[i][j])*t
			}
			frames = append(frames, makeFrame(y, t, countries, cur, n))
		}
	}
	return frames
}

func makeFrame(year int, progress float64, countries []string, vals []float64, n int) RaceFrame {
	bars := make([]RaceBar, len(countries))
	for j, c := range countries {
		bars[j] = RaceBar{Country: c, Value: vals[j]}
	}
	sort.SliceStable(bars, func(a, b int) bool { return bars[a].Value > bars[b].Value })
	if n > 0 && len(bars) > n {
		bars = bars[:n]
	}
	return RaceFrame{Year: year, Progress: progress, Bars: bars}
}

func sortedKeys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
