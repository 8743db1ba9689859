package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tourism-cli/internal/chart"
	"github.com/sells-group/tourism-cli/internal/dataset"
	"github.com/sells-group/tourism-cli/internal/geo"
)

var (
	prefecturesInput     string
	prefecturesShapefile string
)

var prefecturesCmd = &cobra.Command{
	Use:   "prefectures",
	Short: "Map prefecture visit rates as a choropleth with the top 10 numbered",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg.Data.ShapefilePath = orDefault(prefecturesShapefile, cfg.Data.ShapefilePath)

		visits, err := dataset.LoadPrefectureVisits(ctx, orDefault(prefecturesInput, rawPath(prefectureFile)))
		if err != nil {
			return eris.Wrap(err, "prefectures")
		}
		prefs, err := geo.LoadPrefectures(cfg.Data.ShapefilePath)
		if err != nil {
			return eris.Wrap(err, "prefectures")
		}

		areas, unmatched := geo.JoinVisits(prefs, visits)
		if len(unmatched) > 0 {
			zap.L().Warn("prefectures: survey names without a boundary", zap.Strings("names", unmatched))
		}

		var ranked []string
		for _, v := range dataset.TopPrefectures(visits, 10) {
			ranked = append(ranked, geo.GADMName(v.Prefecture))
		}

		style, err := chartStyle()
		if err != nil {
			return err
		}
		path := chartPath("prefecture_visit_rate.png")
		if err := style.Choropleth(path, chart.ChoroplethChart{
			Title:  "Prefecture Visit Rates in Japan (2024)",
			Areas:  areas,
			Ranked: ranked,
		}); err != nil {
			return eris.Wrap(err, "prefectures: render")
		}

		fmt.Printf("Mapped %d prefectures (%d unmatched): %s\n", len(areas), len(unmatched), path)
		return nil
	},
}

func init() {
	prefecturesCmd.Flags().StringVar(&prefecturesInput, "input", "", "visit rate CSV; defaults to data.raw_dir/"+prefectureFile)
	prefecturesCmd.Flags().StringVar(&prefecturesShapefile, "shapefile", "", "GADM level-1 shapefile; overrides data.shapefile_path")
	rootCmd.AddCommand(prefecturesCmd)
}
