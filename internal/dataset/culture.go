package dataset

import "context"

// AnimeMarket is the anime market size in one year, USD million.
type AnimeMarket struct {
	Year     int
	Domestic float64
	Overseas float64
}

// MangaMarket is the total manga market size in one year, USD million.
type MangaMarket struct {
	Year  int
	Total float64
}

// SushiCount is the number of sushi restaurants in the USA in one year.
type SushiCount struct {
	Year       int
	Businesses int
}

// LoadAnimeMarket reads Year, Domestic(USD Million), Overseas(USD Million).
func LoadAnimeMarket(ctx context.Context, path string) ([]AnimeMarket, error) {
	t, err := readTable(ctx, path, "Year", "Domestic(USD Million)", "Overseas(USD Million)")
	if err != nil {
		return nil, err
	}

	var out []AnimeMarket
	err = t.each(func(line int, row []string) error {
		var m AnimeMarket
		var err error
		if m.Year, err = t.int(line, row, "Year"); err != nil {
			return err
		}
		if m.Domestic, err = t.float(line, row, "Domestic(USD Million)"); err != nil {
			return err
		}
		if m.Overseas, err = t.float(line, row, "Overseas(USD Million)"); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	return out, err
}

// LoadMangaMarket reads Year, Total Market(USD Million).
func LoadMangaMarket(ctx context.Context, path string) ([]MangaMarket, error) {
	t, err := readTable(ctx, path, "Year", "Total Market(USD Million)")
	if err != nil {
		return nil, err
	}

	var out []MangaMarket
	err = t.each(func(line int, row []string) error {
		var m MangaMarket
		var err error
		if m.Year, err = t.int(line, row, "Year"); err != nil {
			return err
		}
		if m.Total, err = t.float(line, row, "Total Market(USD Million)"); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	return out, err
}

// LoadSushiCounts reads Year, num_businesses.
func LoadSushiCounts(ctx context.Context, path string) ([]SushiCount, error) {
	t, err := readTable(ctx, path, "Year", "num_businesses")
	if err != nil {
		return nil, err
	}

	var out []SushiCount
	err = t.each(func(line int, row []string) error {
		var s SushiCount
		var err error
		if s.Year, err = t.int(line, row, "Year"); err != nil {
			return err
		}
		if s.Businesses, err = t.int(line, row, "num_businesses"); err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

// Billions converts USD million to USD billion.
func Billions(million float64) float64 { return million / 1000 }
