// Package visitors reshapes the raw visitors-by-nationality table into one
// record per (year, month, country) with a region label and nullable counts.
package visitors

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/tourism-cli/internal/fetcher"
)

// Source describes how the raw file is read.
type Source struct {
	Path     string
	Encoding string // WHATWG label for CSV input
	Sheet    string // sheet name for XLSX input; first sheet when empty
}

// ReadRaw loads the raw table into memory. XLSX files are read by sheet,
// anything else as CSV in the given encoding.
func ReadRaw(ctx context.Context, src Source) ([][]string, error) {
	if fetcher.IsXLSX(src.Path) {
		rows, err := fetcher.ReadXLSX(src.Path, fetcher.XLSXOptions{SheetName: src.Sheet})
		if err != nil {
			return nil, &StageError{Stage: StageRead, Err: err}
		}
		return rows, nil
	}

	rows, err := fetcher.ReadCSVFile(ctx, src.Path, fetcher.CSVOptions{Encoding: src.Encoding})
	if err != nil {
		return nil, &StageError{Stage: StageRead, Err: err}
	}
	return rows, nil
}

// Run reads src, reshapes it and writes the cleaned table to out. On any
// error out is not created or replaced.
func Run(ctx context.Context, src Source, out string, opts Options) (Summary, error) {
	start := time.Now()
	log := zap.L().With(zap.String("input", src.Path), zap.String("output", out))

	rows, err := ReadRaw(ctx, src)
	if err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, eris.Wrap(err, "visitors: cancelled")
	}

	records, sum, err := Reshape(rows, opts)
	if err != nil {
		return sum, err
	}
	if len(sum.DroppedCategories) > 0 {
		log.Info("dropping unmapped categories", zap.Strings("categories", sum.DroppedCategories))
	}

	if err := WriteFile(out, records); err != nil {
		return sum, &StageError{Stage: StageWrite, Err: err}
	}

	log.Info("cleaned visitor table written",
		zap.Int("source_rows", sum.SourceRows),
		zap.Int("value_columns", sum.ValueColumns),
		zap.Int("records", sum.Records),
		zap.Duration("elapsed", time.Since(start)),
	)
	return sum, nil
}
