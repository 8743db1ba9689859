package visitors

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// OtherRegion is assigned to every country missing from the region table.
const OtherRegion = "Other"

// Regions lists the six continent-scale regions in table order.
var Regions = []string{"Asia", "Europe", "Africa", "North America", "South America", "Oceania"}

//go:embed regions.yaml
var regionsYAML []byte

var regionByCountry = mustLoadRegions(regionsYAML)

type regionEntry struct {
	Region    string   `yaml:"region"`
	Countries []string `yaml:"countries"`
}

// loadRegions parses the region table and inverts it to country -> region.
func loadRegions(data []byte) (map[string]string, error) {
	var entries []regionEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrap(err, "visitors: parse region table")
	}

	known := make(map[string]bool, len(Regions))
	for _, r := range Regions {
		known[r] = true
	}

	out := make(map[string]string)
	for _, e := range entries {
		if !known[e.Region] {
			return nil, eris.Errorf("visitors: unknown region %q in region table", e.Region)
		}
		for _, c := range e.Countries {
			if prev, ok := out[c]; ok {
				return nil, eris.Errorf("visitors: country %q listed under %s and %s", c, prev, e.Region)
			}
			out[c] = e.Region
		}
	}
	return out, nil
}

func mustLoadRegions(data []byte) map[string]string {
	m, err := loadRegions(data)
	if err != nil {
		panic(err)
	}
	return m
}

// RegionOf returns the region of country, or OtherRegion when it is not in the table.
func RegionOf(country string) string {
	if r, ok := regionByCountry[country]; ok {
		return r
	}
	return OtherRegion
}
