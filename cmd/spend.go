package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tourism-cli/internal/analysis"
	"github.com/sells-group/tourism-cli/internal/dataset"
	"github.com/sells-group/tourism-cli/internal/visitors"
)

var (
	spendInput    string
	spendCosts    string
	spendOutput   string
	spendStayDays float64
)

var spendCmd = &cobra.Command{
	Use:   "spend",
	Short: "Estimate yearly visitor spend from total visitors and daily travel costs",
	Long: `Joins the yearly total visitors per country with the CPI adjusted daily spend
and multiplies by the average stay. Countries missing from either table are
left out. Writes one row per (year, country) and prints the yearly totals.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg.Spend.CostsFile = orDefault(spendCosts, cfg.Spend.CostsFile)
		cfg.Spend.Output = orDefault(spendOutput, cfg.Spend.Output)
		if spendStayDays > 0 {
			cfg.Spend.StayDays = spendStayDays
		}
		if err := cfg.Validate("spend"); err != nil {
			return err
		}

		records, err := visitors.ReadFile(orDefault(spendInput, cfg.Clean.Output))
		if err != nil {
			return eris.Wrap(err, "spend: read cleaned table")
		}
		costs, err := dataset.LoadTravelCosts(ctx, cfg.Spend.CostsFile)
		if err != nil {
			return eris.Wrap(err, "spend")
		}

		rows := analysis.EstimateSpend(analysis.Filter(records, cfg.Charts.MaxYear), costs, cfg.Spend.StayDays)
		if err := writeSpend(cfg.Spend.Output, rows); err != nil {
			return err
		}
		zap.L().Info("spend: estimate written",
			zap.String("path", cfg.Spend.Output),
			zap.Int("rows", len(rows)),
			zap.Float64("stay_days", cfg.Spend.StayDays),
		)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "YEAR\tSPEND (USD)")
		for _, s := range analysis.SpendByYear(rows) {
			fmt.Fprintf(w, "%d\t%.0f\n", s.Year, s.Spend)
		}
		return w.Flush()
	},
}

func writeSpend(path string, rows []analysis.YearlySpend) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "spend: create output dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "spend: create output")
	}
	if err := analysis.WriteSpendCSV(f, rows); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrap(f.Close(), "spend: close output")
}

func init() {
	spendCmd.Flags().StringVar(&spendInput, "input", "", "cleaned visitor CSV; defaults to clean.output")
	spendCmd.Flags().StringVar(&spendCosts, "costs", "", "travel costs CSV; overrides spend.costs_file")
	spendCmd.Flags().StringVar(&spendOutput, "output", "", "spend CSV path; overrides spend.output")
	spendCmd.Flags().Float64Var(&spendStayDays, "stay-days", 0, "average stay in days; overrides spend.stay_days")
	rootCmd.AddCommand(spendCmd)
}
