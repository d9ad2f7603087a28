package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func highDays(state string, year int, usg, unhealthy, veryUnhealthy, hazardous float64) Record {
	r := NewRecord(state, "Any", year)
	r.USGDays = usg
	r.UnhealthyDays = unhealthy
	r.VeryUnhealthyDays = veryUnhealthy
	r.HazardousDays = hazardous
	return r
}

func TestHighDaysByState(t *testing.T) {
	records := []Record{
		highDays("California", 2021, 10, 5, 1, 0),
		highDays("California", 2022, 3, math.NaN(), 0, 1),
		highDays("District Of Columbia", 2021, 2, 0, 0, 0),
		highDays("Country Of Mexico", 2021, 40, 0, 0, 0),
		highDays("  ", 2021, 9, 9, 9, 9),
	}

	for _, scope := range []string{ScopeUS, ScopeAll} {
		t.Run(scope, func(t *testing.T) {
			got := HighDaysByState(records, scope)
			require.Len(t, got, 2)
			assert.Equal(t, StateDays{State: "California", Abbreviation: "CA", HighDays: 20}, got[0])
			assert.Equal(t, StateDays{State: "District Of Columbia", Abbreviation: "DC", HighDays: 2}, got[1])
		})
	}
}

func TestStateAbbreviation(t *testing.T) {
	abbr, ok := StateAbbreviation("Wyoming")
	assert.True(t, ok)
	assert.Equal(t, "WY", abbr)

	_, ok = StateAbbreviation("Puerto Rico")
	assert.False(t, ok)
	assert.True(t, IsUSState("District of Columbia"))
	assert.Len(t, stateAbbreviations, 52)
}

func TestDistinctYears(t *testing.T) {
	records := []Record{
		highDays("Ohio", 2021, 0, 0, 0, 0),
		highDays("Iowa", 2021, 0, 0, 0, 0),
		highDays("Iowa", 2023, 0, 0, 0, 0),
		highDays("Iowa", YearUnknown, 0, 0, 0, 0),
	}
	assert.Equal(t, 2, DistinctYears(records))
}
