// Package export writes the cleaned visitor table and its main aggregates to
// an Excel workbook.
package export

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sells-group/tourism-cli/internal/analysis"
	"github.com/sells-group/tourism-cli/internal/visitors"
)

// Sheet names in workbook order.
const (
	SheetVisitors = "visitors"
	SheetYearly   = "yearly"
	SheetRegional = "regional"
)

// Workbook is the content of one export.
type Workbook struct {
	Records []visitors.Record
	// Metric selects the count used by the regional sheet.
	Metric string
	Shares analysis.RegionalShares
	// MaxYear bounds the yearly sheet the way the charts are bounded; 0 keeps every year.
	MaxYear int
}

// Write saves wb as an .xlsx file at path, creating parent directories.
func Write(path string, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", SheetVisitors); err != nil {
		return eris.Wrap(err, "export: rename sheet")
	}
	for _, name := range []string{SheetYearly, SheetRegional} {
		if _, err := f.NewSheet(name); err != nil {
			return eris.Wrapf(err, "export: new sheet %s", name)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return eris.Wrap(err, "export: header style")
	}

	if err := writeVisitors(f, bold, wb.Records); err != nil {
		return err
	}
	if err := writeYearly(f, bold, analysis.Filter(wb.Records, wb.MaxYear)); err != nil {
		return err
	}
	if err := writeRegional(f, bold, wb.Metric, wb.Shares); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "export: create output dir")
	}
	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}

	zap.L().Info("export: wrote workbook",
		zap.String("path", path),
		zap.Int("visitor_rows", len(wb.Records)),
		zap.Int("periods", len(wb.Shares.Periods)),
	)
	return nil
}

func writeVisitors(f *excelize.File, style int, records []visitors.Record) error {
	if err := writeHeader(f, SheetVisitors, style, visitors.Columns, 12); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{r.Year, r.Month, r.Country, r.Region}
		for _, c := range visitors.Categories {
			// Null counts stay empty cells.
			if v := r.Value(c); v != nil {
				row = append(row, *v)
			} else {
				row = append(row, nil)
			}
		}
		if err := setRow(f, SheetVisitors, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeYearly(f *excelize.File, style int, records []visitors.Record) error {
	header := append([]string{"year"}, visitors.Categories...)
	if err := writeHeader(f, SheetYearly, style, header, 14); err != nil {
		return err
	}

	totals := make(map[string]map[int]int64, len(visitors.Categories))
	for _, c := range visitors.Categories {
		m := make(map[int]int64)
		for _, yv := range analysis.YearlyTotals(records, c) {
			m[yv.Year] = yv.Value
		}
		totals[c] = m
	}

	for i, year := range analysis.Years(records) {
		row := []any{year}
		for _, c := range visitors.Categories {
			row = append(row, totals[c][year])
		}
		if err := setRow(f, SheetYearly, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRegional(f *excelize.File, style int, metric string, s analysis.RegionalShares) error {
	if metric == "" {
		metric = "value"
	}
	if err := writeHeader(f, SheetRegional, style, []string{"period", "region", metric, "percent"}, 16); err != nil {
		return err
	}
	row := 2
	for i, period := range s.Periods {
		for j, region := range s.Regions {
			if err := setRow(f, SheetRegional, row, []any{period, region, s.Totals[i][j], s.Percent[i][j]}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, style int, header []string, width float64) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return eris.Wrap(err, "export: header cell")
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return eris.Wrapf(err, "export: %s header", sheet)
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return eris.Wrap(err, "export: header width")
	}
	if err := f.SetColWidth(sheet, "A", last, width); err != nil {
		return eris.Wrapf(err, "export: %s column width", sheet)
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
		return eris.Wrapf(err, "export: %s header style", sheet)
	}
	return eris.Wrapf(f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}), "export: %s freeze header", sheet)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return eris.Wrap(err, "export: cell name")
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return eris.Wrapf(err, "export: %s row %d", sheet, row)
		}
	}
	return nil
}
