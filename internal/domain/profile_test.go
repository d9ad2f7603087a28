package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearlyProfile(t *testing.T) {
	withDays := func(r Record, days, good, unhealthy float64) Record {
		r.DaysWithAQI = days
		r.GoodDays = good
		r.UnhealthyDays = unhealthy
		return r
	}
	records := []Record{
		withDays(rec("Ohio", "Adams", 2022, 40, 120), 300, 200, 2),
		withDays(rec("Ohio", "Adams", 2021, 30, 90), 365, 250, math.NaN()),
		withDays(rec("Ohio", "Adams", 2022, math.NaN(), 80), 10, 5, 1),
		rec("Ohio", "Adams", YearUnknown, 99, 99),
	}

	got := YearlyProfile(records)

	require.Len(t, got, 2)
	assert.Equal(t, YearStat{Year: 2021, MedianAQI: 30, MaxAQI: 90, DaysWithAQI: 365, GoodDays: 250, UnhealthyDays: 0, Records: 1}, got[0])
	assert.Equal(t, 2022, got[1].Year)
	assert.Equal(t, 40.0, got[1].MedianAQI, "missing median is not averaged in")
	assert.Equal(t, 100.0, got[1].MaxAQI)
	assert.Equal(t, 310.0, got[1].DaysWithAQI)
	assert.Equal(t, 3.0, got[1].UnhealthyDays)
	assert.Equal(t, 2, got[1].Records)
}

func TestCountyRecords(t *testing.T) {
	records := []Record{
		rec(" Ohio", "Adams ", 2021, 1, 2),
		rec("Ohio", "Butler", 2021, 1, 2),
	}
	got := CountyRecords(records, CountyKey{State: "Ohio", County: "Adams"})
	require.Len(t, got, 1)
	assert.Equal(t, " Ohio", got[0].State)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Double Jeopardy", StatusLabel(true, true))
	assert.Equal(t, "High Chronic", StatusLabel(true, false))
	assert.Equal(t, "High Acute", StatusLabel(false, true))
	assert.Equal(t, "Low Risk", StatusLabel(false, false))
}
