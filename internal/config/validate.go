package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/tourism-cli/internal/visitors"
)

func metricProblem(metric string) string {
	return fmt.Sprintf("charts.metric %q is not a visitor category (want one of %s)",
		metric, strings.Join(visitors.Categories, ", "))
}

// Validate checks the settings a command mode depends on. Every problem is
// reported in a single error.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "clean":
		if c.Clean.Input == "" {
			problems = append(problems, "clean.input is required")
		}
		if c.Clean.Output == "" {
			problems = append(problems, "clean.output is required")
		}
		if order, err := visitors.ParseMonthOrder(c.Clean.MonthOrder); err != nil {
			problems = append(problems, fmt.Sprintf("clean.month_order must be lexical or calendar, got %q", c.Clean.MonthOrder))
		} else {
			c.Clean.MonthOrder = string(order)
		}
	case "charts":
		if !visitors.IsCategory(c.Charts.Metric) {
			problems = append(problems, metricProblem(c.Charts.Metric))
		}
		if c.Charts.CovidStart > c.Charts.CovidEnd {
			problems = append(problems, "charts.covid_start must not be after charts.covid_end")
		}
		if c.Charts.TopN < 1 || c.Charts.RaceBars < 1 {
			problems = append(problems, "charts.top_n and charts.race_bars must be >= 1")
		}
		if c.Charts.Concurrency < 1 || c.Charts.Concurrency > 16 {
			problems = append(problems, "charts.concurrency must be between 1 and 16")
		}
		if c.Charts.WidthInches <= 0 || c.Charts.HeightInches <= 0 {
			problems = append(problems, "charts.width_inches and charts.height_inches must be > 0")
		}
	case "spend":
		if c.Spend.StayDays <= 0 {
			problems = append(problems, "spend.stay_days must be > 0")
		}
	case "fetch":
		if len(c.Fetch.Sources) == 0 {
			problems = append(problems, "fetch.sources must list at least one source")
		}
		for i, s := range c.Fetch.Sources {
			if s.URL == "" || s.Dest == "" {
				problems = append(problems, fmt.Sprintf("fetch.sources[%d] needs url and dest", i))
			}
		}
		if c.Fetch.Concurrency < 1 {
			problems = append(problems, "fetch.concurrency must be >= 1")
		}
	case "load":
		switch c.Store.Driver {
		case "sqlite", "postgres":
		default:
			problems = append(problems, fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver))
		}
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	case "export":
		if c.Export.Path == "" {
			problems = append(problems, "export.path is required")
		}
		if !visitors.IsCategory(c.Charts.Metric) {
			problems = append(problems, metricProblem(c.Charts.Metric))
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
