package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/tourism-cli/internal/chart"
	"github.com/sells-group/tourism-cli/internal/dataset"
)

var (
	motivationInput    string
	motivationQuestion string
)

var motivationCmd = &cobra.Command{
	Use:   "motivation",
	Short: "Chart the top activities visitors reported",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		all, err := dataset.LoadMotivations(ctx, orDefault(motivationInput, rawPath(motivationFile)))
		if err != nil {
			return eris.Wrap(err, "motivation")
		}
		top := dataset.TopMotivations(all, motivationQuestion, cfg.Charts.TopN)
		if len(top) == 0 {
			return eris.Errorf("motivation: no answers for question %q", orDefault(motivationQuestion, dataset.DefaultQuestion))
		}

		style, err := chartStyle()
		if err != nil {
			return err
		}
		bars := make([]chart.Bar, len(top))
		for i, m := range top {
			bars[i] = chart.Bar{Label: m.Activity, Value: m.Ratio, Text: fmt.Sprintf("%.1f%%", m.Ratio)}
		}

		path := chartPath("visit_motivation.png")
		if err := style.HorizontalBars(path, chart.BarChart{
			Title:  fmt.Sprintf("Top %d Activities Tourists Did During Their Stay in Japan (2024)", len(top)),
			XLabel: "Participation Rate",
			Bars:   bars,
		}); err != nil {
			return eris.Wrap(err, "motivation: render")
		}

		fmt.Printf("Charted %d activities: %s\n", len(top), path)
		return nil
	},
}

func init() {
	motivationCmd.Flags().StringVar(&motivationInput, "input", "", "purpose of visit CSV; defaults to data.raw_dir/"+motivationFile)
	motivationCmd.Flags().StringVar(&motivationQuestion, "question", "", "survey question to rank; defaults to the current-stay question")
	rootCmd.AddCommand(motivationCmd)
}
