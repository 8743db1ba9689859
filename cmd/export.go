package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/tourism-cli/internal/analysis"
	"github.com/sells-group/tourism-cli/internal/export"
	"github.com/sells-group/tourism-cli/internal/visitors"
)

var (
	exportInput  string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the cleaned table, yearly totals and regional shares to an Excel workbook",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg.Export.Path = orDefault(exportOutput, cfg.Export.Path)
		if err := cfg.Validate("export"); err != nil {
			return err
		}

		records, err := visitors.ReadFile(orDefault(exportInput, cfg.Clean.Output))
		if err != nil {
			return eris.Wrap(err, "export: read cleaned table")
		}
		periods, err := analysis.ParsePeriods(cfg.Charts.Periods)
		if err != nil {
			return err
		}
		filtered := analysis.Filter(records, cfg.Charts.MaxYear)
		shares := analysis.RegionalShare(filtered, cfg.Charts.Metric, periods, cfg.Charts.ExcludeRegions)

		if err := export.Write(cfg.Export.Path, export.Workbook{
			Records: records,
			Metric:  cfg.Charts.Metric,
			Shares:  shares,
			MaxYear: cfg.Charts.MaxYear,
		}); err != nil {
			return err
		}

		fmt.Printf("Exported %d records: %s\n", len(records), cfg.Export.Path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "cleaned visitor CSV; defaults to clean.output")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "workbook path; overrides export.path")
	rootCmd.AddCommand(exportCmd)
}
