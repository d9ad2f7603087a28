package domain

import (
	"math"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// yearInNameRe matches the year suffix of the EPA file names, e.g.
// "annual_aqi_by_county_2023.csv" -> 2023.
var yearInNameRe = regexp.MustCompile(`_(\d{4})\.csv$`)

// YearFromName extracts the year from a source path or URL. Query strings
// and fragments are ignored.
func YearFromName(name string) (int, bool) {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	m := yearInNameRe.FindStringSubmatch(path.Base(name))
	if m == nil {
		return YearUnknown, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return YearUnknown, false
	}
	return y, true
}

// ParseRecord builds a Record from a CSV row keyed by header. A known
// sourceYear overrides the row's own Year column. Missing or unparsable
// numeric cells become NaN.
func ParseRecord(row map[string]string, sourceYear int, source string) Record {
	year := sourceYear
	if year == YearUnknown {
		year = parseYear(row[ColYear])
	}

	r := NewRecord(row[ColState], row[ColCounty], year)
	r.Source = source
	r.MedianAQI = ParseNumber(row[ColMedianAQI])
	r.MaxAQI = ParseNumber(row[ColMaxAQI])
	r.P90AQI = ParseNumber(row[ColP90AQI])
	r.DaysWithAQI = ParseNumber(row[ColDaysWithAQI])
	r.GoodDays = ParseNumber(row[ColGoodDays])
	r.ModerateDays = ParseNumber(row[ColModerateDays])
	r.USGDays = ParseNumber(row[ColUSGDays])
	r.UnhealthyDays = ParseNumber(row[ColUnhealthyDays])
	r.VeryUnhealthyDays = ParseNumber(row[ColVeryUnhealthyDays])
	r.HazardousDays = ParseNumber(row[ColHazardousDays])
	r.DaysCO = ParseNumber(row[ColDaysCO])
	r.DaysNO2 = ParseNumber(row[ColDaysNO2])
	r.DaysOzone = ParseNumber(row[ColDaysOzone])
	r.DaysPM25 = ParseNumber(row[ColDaysPM25])
	r.DaysPM10 = ParseNumber(row[ColDaysPM10])
	return r
}

// ParseNumber parses a numeric cell, returning NaN for empty or
// non-numeric input.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseYear(s string) int {
	v := ParseNumber(s)
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v <= 0 {
		return YearUnknown
	}
	return int(v)
}
