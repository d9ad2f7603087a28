package dashboard

import (
	"fmt"

	"github.com/couchcryptid/aqi-risk-service/internal/domain"
)

// HeatmapQuery selects the state heatmap.
type HeatmapQuery struct {
	Years YearRange
	Scope string
}

// Heatmap totals high AQI days per state.
type Heatmap struct {
	YearMin     int                `json:"year_min"`
	YearMax     int                `json:"year_max"`
	Scope       string             `json:"scope"`
	States      []domain.StateDays `json:"states"`
	Total       float64            `json:"total"`
	MaxState    *domain.StateDays  `json:"max_state"`
	YearsLoaded int                `json:"years_loaded"`
}

// Heatmap sums high AQI days per state over the year range. Scope is "us"
// (default) or "all".
func (v *Views) Heatmap(t *domain.Table, q HeatmapQuery) (Heatmap, error) {
	scope := q.Scope
	if scope == "" {
		scope = domain.ScopeUS
	}
	if scope != domain.ScopeUS && scope != domain.ScopeAll {
		return Heatmap{}, fmt.Errorf("%w: unknown scope %q", ErrInvalidQuery, q.Scope)
	}

	years := q.Years.resolve(t)
	records := domain.FilterYears(t.Records(), years.Min, years.Max)
	states := domain.HighDaysByState(records, scope)

	out := Heatmap{
		YearMin:     years.Min,
		YearMax:     years.Max,
		Scope:       scope,
		States:      states,
		YearsLoaded: domain.DistinctYears(records),
	}
	for i := range states {
		out.Total += states[i].HighDays
		if out.MaxState == nil || states[i].HighDays > out.MaxState.HighDays {
			out.MaxState = &states[i]
		}
	}
	return out, nil
}
