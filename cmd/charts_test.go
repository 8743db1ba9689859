//go:build !integration

package main

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartsCmd(t *testing.T) {
	testConfig(t)
	cleanSample(t)

	require.NoError(t, runCmd(chartsCmd))
	for _, name := range []string{
		"total_visitors_growth.png",
		"regional_distribution_maps.png",
		"top_10_countries.png",
		"top_10_highest_growth.png",
		"monthly_distribution_heatmap.png",
		"top_15_countries_barchart_race.gif",
	} {
		requireFile(t, chartPath(name))
	}
}

func TestChartsCmd_FlagOverrides(t *testing.T) {
	dir := testConfig(t)
	cleanSample(t)

	chartsOutDir = filepath.Join(dir, "other")
	chartsMetric = "total"
	chartsNoAnimation = true
	chartsConcurrency = 1
	defer resetFlags()

	require.NoError(t, runCmd(chartsCmd))
	assert.Equal(t, "total", cfg.Charts.Metric)
	requireFile(t, filepath.Join(dir, "other", "top_10_countries.png"))
	assert.NoFileExists(t, filepath.Join(dir, "other", "top_15_countries_barchart_race.gif"))
}

func TestChartsCmd_BadMetric(t *testing.T) {
	testConfig(t)
	chartsMetric = "visitors"
	defer resetFlags()

	err := runCmd(chartsCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "charts.metric")
}

func TestCostsCmd(t *testing.T) {
	testConfig(t)
	writeRaw(t, travelCostsFile, `Year,Country,CPI_adjusted_daily_spend
2010,China,$200.00
2011,China,$205
2010,U.S.A.,"$1,150.25"
2011,U.S.A.,$1100
`)

	require.NoError(t, runCmd(costsCmd))
	requireFile(t, chartPath("travel_costs_cpi_adjusted.png"))
}

func TestMarketsCmd(t *testing.T) {
	testConfig(t)
	writeRaw(t, animeFile, "Year,Domestic(USD Million),Overseas(USD Million)\n2019,\"$13,500\",\"$11,200\"\n2020,\"$12,000\",\"$12,400\"\n")
	writeRaw(t, mangaFile, "Year,Total Market(USD Million)\n2024,\"$9,450\"\n2025,\"$10,200\"\n")
	writeRaw(t, sushiFile, "Year,num_businesses\n2018,4100\n2019,4263\n")

	require.NoError(t, runCmd(marketsCmd))
	for _, name := range []string{"anime_market_growth.png", "manga_market_growth.png", "sushi_restaurants_growth.png"} {
		requireFile(t, chartPath(name))
	}
}

func TestMarketsCmd_MissingFile(t *testing.T) {
	testConfig(t)
	err := runCmd(marketsCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markets")
}

func TestMotivationCmd(t *testing.T) {
	testConfig(t)
	writeRaw(t, motivationFile, `Item1,Item2,Composition ratio
Eating Japanese food,What did you do during your current stay in Japan?,83.2
Shopping,What did you do during your current stay in Japan?,75.1
Sightseeing,What are you planning to do on your next visit?,60
`)

	require.NoError(t, runCmd(motivationCmd))
	requireFile(t, chartPath("visit_motivation.png"))

	motivationQuestion = "Is this question asked?"
	defer resetFlags()
	err := runCmd(motivationCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no answers")
}

func TestPrefecturesCmd(t *testing.T) {
	testConfig(t)
	writeRaw(t, prefectureFile, `Prefecture,Visit Rate(%)
Tokyo,50.9
Chiba Prefecture,42.3
Atlantis Prefecture,1
`)

	shpPath := filepath.Join(t.TempDir(), "jpn.shp")
	w, err := shp.Create(shpPath, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME_1", 40)}))
	for i, name := range []string{"Tokyo", "Chiba", "Tottori"} {
		x := float64(i * 2)
		pl := shp.NewPolyLine([][]shp.Point{{{X: x, Y: 0}, {X: x, Y: 1}, {X: x + 1, Y: 1}, {X: x + 1, Y: 0}, {X: x, Y: 0}}})
		poly := shp.Polygon(*pl)
		row := w.Write(&poly)
		require.NoError(t, w.WriteAttribute(int(row), 0, name))
	}
	w.Close()

	prefecturesShapefile = shpPath
	defer resetFlags()

	require.NoError(t, runCmd(prefecturesCmd))
	requireFile(t, chartPath("prefecture_visit_rate.png"))
}
