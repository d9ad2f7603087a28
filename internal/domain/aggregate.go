package domain

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/aqi-risk-service/internal/stats"
)

// CountyKey identifies a county by its trimmed state and county names.
type CountyKey struct {
	State  string
	County string
}

// String renders the key as "State|County".
func (k CountyKey) String() string { return k.State + "|" + k.County }

// CountyAggregate holds the per-county means over the selected years.
type CountyAggregate struct {
	State         string  `json:"state"`
	County        string  `json:"county"`
	MeanMedianAQI float64 `json:"mean_median_aqi"`
	MeanMaxAQI    float64 `json:"mean_max_aqi"`
	Records       int     `json:"records"`
}

// Key returns the aggregate's county key.
func (a CountyAggregate) Key() CountyKey {
	return CountyKey{State: a.State, County: a.County}
}

// FilterYears returns the records whose year is known and falls within
// [yearMin, yearMax].
func FilterYears(records []Record, yearMin, yearMax int) []Record {
	out := make([]Record, 0, len(records))
	for i := range records {
		y := records[i].Year
		if y == YearUnknown {
			continue
		}
		if y >= yearMin && y <= yearMax {
			out = append(out, records[i])
		}
	}
	return out
}

// AggregateCounties groups records by trimmed (State, County) and averages
// Median AQI and Max AQI. Records with an empty state or county, or missing
// either AQI value, are skipped entirely, so every returned aggregate has at
// least one contributing record. Results are sorted by state, then county.
func AggregateCounties(records []Record) []CountyAggregate {
	type acc struct {
		medSum, maxSum float64
		n              int
	}
	groups := make(map[CountyKey]*acc)

	for i := range records {
		k := records[i].Key()
		if k.State == "" || k.County == "" {
			continue
		}
		med, mx := records[i].MedianAQI, records[i].MaxAQI
		if !stats.IsFinite(med) || !stats.IsFinite(mx) {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
		}
		g.medSum += med
		g.maxSum += mx
		g.n++
	}

	out := make([]CountyAggregate, 0, len(groups))
	for k, g := range groups {
		out = append(out, CountyAggregate{
			State:         k.State,
			County:        k.County,
			MeanMedianAQI: g.medSum / float64(g.n),
			MeanMaxAQI:    g.maxSum / float64(g.n),
			Records:       g.n,
		})
	}
	slices.SortFunc(out, func(a, b CountyAggregate) int {
		return compareKeys(a.Key(), b.Key())
	})
	return out
}

// FilterState keeps the aggregates of state. An empty state keeps all.
func FilterState[T Keyed](items []T, state string) []T {
	if state == "" {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Key().State == state {
			out = append(out, it)
		}
	}
	return out
}

// FindCounty returns the item matching key.
func FindCounty[T Keyed](items []T, key CountyKey) (T, bool) {
	for _, it := range items {
		if it.Key() == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func compareKeys(a, b CountyKey) int {
	return cmp.Or(cmp.Compare(a.State, b.State), cmp.Compare(a.County, b.County))
}
