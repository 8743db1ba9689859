package geo

import (
	"github.com/sells-group/tourism-cli/internal/dataset"
)

// Shaded is a prefecture with its visit rate, if the survey reports one.
type Shaded struct {
	Prefecture
	Rate    float64
	HasRate bool
	Survey  string // survey label the rate came from
}

// JoinVisits attaches survey visit rates to boundaries by GADM name. It also
// returns the survey labels that matched no boundary.
func JoinVisits(prefs []Prefecture, visits []dataset.PrefectureVisit) ([]Shaded, []string) {
	byName := make(map[string]dataset.PrefectureVisit, len(visits))
	for _, v := range visits {
		name := GADMName(v.Prefecture)
		if _, dup := byName[name]; !dup {
			byName[name] = v
		}
	}

	matched := make(map[string]bool)
	out := make([]Shaded, len(prefs))
	for i, p := range prefs {
		out[i] = Shaded{Prefecture: p}
		if v, ok := byName[p.Name]; ok {
			out[i].Rate = v.Rate
			out[i].HasRate = true
			out[i].Survey = v.Prefecture
			matched[p.Name] = true
		}
	}

	var unmatched []string
	for _, v := range visits {
		if !matched[GADMName(v.Prefecture)] {
			unmatched = append(unmatched, v.Prefecture)
		}
	}
	return out, unmatched
}
