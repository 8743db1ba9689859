package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

var (
	cleanInput      string
	cleanOutput     string
	cleanEncoding   string
	cleanSheet      string
	cleanMonthOrder string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Reshape the raw visitors-by-nationality table into one row per year, month and country",
	Long: `Reads the two-header-row visitor table (CSV or XLSX), unpivots it, keeps one
record per (year, month, country), renames the categories, attaches the region
and parses the counts. The cleaned CSV is written atomically; any error leaves
an existing output untouched.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg.Clean.Input = orDefault(cleanInput, cfg.Clean.Input)
		cfg.Clean.Output = orDefault(cleanOutput, cfg.Clean.Output)
		cfg.Clean.Encoding = orDefault(cleanEncoding, cfg.Clean.Encoding)
		cfg.Clean.Sheet = orDefault(cleanSheet, cfg.Clean.Sheet)
		cfg.Clean.MonthOrder = orDefault(cleanMonthOrder, cfg.Clean.MonthOrder)
		if err := cfg.Validate("clean"); err != nil {
			return err
		}

		order, err := visitors.ParseMonthOrder(cfg.Clean.MonthOrder)
		if err != nil {
			return err
		}

		summary, err := visitors.Run(ctx,
			visitors.Source{Path: cfg.Clean.Input, Encoding: cfg.Clean.Encoding, Sheet: cfg.Clean.Sheet},
			cfg.Clean.Output,
			visitors.Options{
				Format: visitors.NumberFormat{
					ThousandsSeparators: cfg.Clean.ThousandsSeparators,
					MissingMarkers:      cfg.Clean.MissingMarkers,
				},
				MonthOrder: order,
			},
		)
		if err != nil {
			return eris.Wrap(err, "clean")
		}

		fmt.Printf("Cleaned %d rows into %d records: %s\n", summary.SourceRows, summary.Records, cfg.Clean.Output)
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanInput, "input", "", "raw visitors table (.csv or .xlsx); overrides clean.input")
	cleanCmd.Flags().StringVar(&cleanOutput, "output", "", "cleaned CSV path; overrides clean.output")
	cleanCmd.Flags().StringVar(&cleanEncoding, "encoding", "", "input charset, e.g. shift_jis; overrides clean.encoding")
	cleanCmd.Flags().StringVar(&cleanSheet, "sheet", "", "XLSX sheet name; overrides clean.sheet")
	cleanCmd.Flags().StringVar(&cleanMonthOrder, "month-order", "", "lexical or calendar; overrides clean.month_order")
	rootCmd.AddCommand(cleanCmd)
}
