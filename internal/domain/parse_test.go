package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYearFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		year int
		ok   bool
	}{
		{"bare file", "annual_aqi_by_county_2023.csv", 2023, true},
		{"relative path", "data/annual_aqi_by_county_2021.csv", 2021, true},
		{"url with query", "https://example.org/annual_aqi_by_county_2025.csv?raw=1", 2025, true},
		{"no year", "counties.csv", YearUnknown, false},
		{"year not at end", "annual_2023_by_county.csv", YearUnknown, false},
		{"wrong extension", "annual_aqi_by_county_2023.zip", YearUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := YearFromName(tt.in)
			assert.Equal(t, tt.year, year)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseRecord(t *testing.T) {
	row := map[string]string{
		ColState:         "Ohio",
		ColCounty:        "Adams",
		ColYear:          "1999",
		ColMedianAQI:     " 38 ",
		ColMaxAQI:        "101",
		ColUSGDays:       "3",
		ColUnhealthyDays: "",
		ColHazardousDays: "n/a",
	}

	t.Run("source year overrides column", func(t *testing.T) {
		r := ParseRecord(row, 2022, "annual_aqi_by_county_2022.csv")
		assert.Equal(t, 2022, r.Year)
		assert.Equal(t, "annual_aqi_by_county_2022.csv", r.Source)
		assert.Equal(t, 38.0, r.MedianAQI)
		assert.Equal(t, 101.0, r.MaxAQI)
		assert.Equal(t, 3.0, r.USGDays)
		assert.True(t, math.IsNaN(r.UnhealthyDays), "empty cell is missing, not zero")
		assert.True(t, math.IsNaN(r.HazardousDays))
		assert.True(t, math.IsNaN(r.DaysPM25), "absent column is missing")
		assert.Equal(t, 3.0, r.HighDays())
	})

	t.Run("falls back to year column", func(t *testing.T) {
		r := ParseRecord(row, YearUnknown, "counties.csv")
		assert.Equal(t, 1999, r.Year)
	})

	t.Run("no year anywhere", func(t *testing.T) {
		r := ParseRecord(map[string]string{ColState: "Ohio", ColYear: "soon"}, YearUnknown, "x.csv")
		assert.Equal(t, YearUnknown, r.Year)
	})
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 12.5, ParseNumber("12.5"))
	assert.Equal(t, -3.0, ParseNumber(" -3 "))
	assert.True(t, math.IsNaN(ParseNumber("")))
	assert.True(t, math.IsNaN(ParseNumber("abc")))
}

func TestRecordColumns(t *testing.T) {
	r := rec("Ohio", "Adams", 2021, 30, 90)
	cols := r.Columns()
	assert.Equal(t, ColState, cols[0].Name)
	assert.Equal(t, ColYear, cols[2].Name)
	assert.Equal(t, 2021, cols[2].Value)
	assert.Len(t, cols, 18)
}
