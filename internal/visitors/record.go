package visitors

// Columns is the fixed header of the cleaned visitor table.
var Columns = []string{"year", "month", "country", "region", "total", "tourist", "business", "others", "short_excursion"}

// Categories lists the numeric columns in output order.
var Categories = []string{"total", "tourist", "business", "others", "short_excursion"}

// categoryLabels are the source labels of Categories, in the same order.
var categoryLabels = []string{"Total", "Tourist", "Business", "Others", "Short Excursion"}

// categoryColumns renames source category labels to output columns.
// Labels missing from this table are dropped.
var categoryColumns = map[string]string{
	"Total":           "total",
	"Tourist":         "tourist",
	"Business":        "business",
	"Others":          "others",
	"Short Excursion": "short_excursion",
}

// Record is one cleaned row: the visitor counts of one country in one month.
// Nil counts were blank or marked missing in the source.
type Record struct {
	Year           int    `csv:"year"`
	Month          string `csv:"month"`
	Country        string `csv:"country"`
	Region         string `csv:"region"`
	Total          *int64 `csv:"total"`
	Tourist        *int64 `csv:"tourist"`
	Business       *int64 `csv:"business"`
	Others         *int64 `csv:"others"`
	ShortExcursion *int64 `csv:"short_excursion"`
}

// Value returns the count stored under the named output column, or nil.
func (r *Record) Value(column string) *int64 {
	switch column {
	case "total":
		return r.Total
	case "tourist":
		return r.Tourist
	case "business":
		return r.Business
	case "others":
		return r.Others
	case "short_excursion":
		return r.ShortExcursion
	}
	return nil
}

// Count returns the named count with nulls read as zero.
func (r *Record) Count(column string) int64 {
	if v := r.Value(column); v != nil {
		return *v
	}
	return 0
}

func (r *Record) set(column string, v *int64) {
	switch column {
	case "total":
		r.Total = v
	case "tourist":
		r.Tourist = v
	case "business":
		r.Business = v
	case "others":
		r.Others = v
	case "short_excursion":
		r.ShortExcursion = v
	}
}

// IsCategory reports whether column names one of the numeric columns.
func IsCategory(column string) bool {
	for _, c := range Categories {
		if c == column {
			return true
		}
	}
	return false
}
