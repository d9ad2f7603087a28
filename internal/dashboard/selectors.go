package dashboard

import (
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
)

// Years lists the loaded years, ascending.
func (v *Views) Years(t *domain.Table) []int {
	return t.Years()
}

// States lists the states with at least one county aggregate.
func (v *Views) States(t *domain.Table) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, c := range t.Aggregates() {
		if !seen[c.State] {
			seen[c.State] = true
			out = append(out, c.State)
		}
	}
	return out
}

// Counties lists the counties of state with an aggregate, sorted.
func (v *Views) Counties(t *domain.Table, state string) []string {
	out := []string{}
	for _, c := range domain.FilterState(t.Aggregates(), state) {
		out = append(out, c.County)
	}
	return out
}
