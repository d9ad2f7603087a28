package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Heatmap scopes.
const (
	ScopeUS  = "us"
	ScopeAll = "all"
)

var stateAbbreviations = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR", "California": "CA",
	"Colorado": "CO", "Connecticut": "CT", "Delaware": "DE", "District Of Columbia": "DC",
	"District of Columbia": "DC", "Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
	"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS", "Kentucky": "KY",
	"Louisiana": "LA", "Maine": "ME", "Maryland": "MD", "Massachusetts": "MA", "Michigan": "MI",
	"Minnesota": "MN", "Mississippi": "MS", "Missouri": "MO", "Montana": "MT", "Nebraska": "NE",
	"Nevada": "NV", "New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
	"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK", "Oregon": "OR",
	"Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC", "South Dakota": "SD",
	"Tennessee": "TN", "Texas": "TX", "Utah": "UT", "Vermont": "VT", "Virginia": "VA",
	"Washington": "WA", "West Virginia": "WV", "Wisconsin": "WI", "Wyoming": "WY",
}

// StateAbbreviation returns the USPS code of a state name.
func StateAbbreviation(state string) (string, bool) {
	abbr, ok := stateAbbreviations[state]
	return abbr, ok
}

// IsUSState reports whether state is one of the 50 states or DC. Territories
// and "Country Of Mexico" style entries in the EPA files are not.
func IsUSState(state string) bool {
	_, ok := stateAbbreviations[state]
	return ok
}

// StateDays is the total of high AQI days across one state's counties.
type StateDays struct {
	State        string  `json:"state"`
	Abbreviation string  `json:"abbreviation"`
	HighDays     float64 `json:"high_days"`
}

// HighDaysByState sums Record.HighDays per trimmed state. Scope "us" drops
// states outside the 50 states and DC first; in every scope states with no
// postal abbreviation are left out of the result. Output is sorted by state.
func HighDaysByState(records []Record, scope string) []StateDays {
	sums := make(map[string]float64)
	for i := range records {
		st := strings.TrimSpace(records[i].State)
		if st == "" {
			continue
		}
		if scope == ScopeUS && !IsUSState(st) {
			continue
		}
		sums[st] += records[i].HighDays()
	}

	out := make([]StateDays, 0, len(sums))
	for st, v := range sums {
		abbr, ok := StateAbbreviation(st)
		if !ok {
			continue
		}
		out = append(out, StateDays{State: st, Abbreviation: abbr, HighDays: v})
	}
	slices.SortFunc(out, func(a, b StateDays) int { return cmp.Compare(a.State, b.State) })
	return out
}

// DistinctYears counts the distinct known years among records.
func DistinctYears(records []Record) int {
	seen := make(map[int]struct{})
	for i := range records {
		if y := records[i].Year; y != YearUnknown {
			seen[y] = struct{}{}
		}
	}
	return len(seen)
}
