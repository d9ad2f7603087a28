package domain

import (
	"errors"
	"math"
	"strings"
)

// Column headers of the EPA annual county summary.
const (
	ColState             = "State"
	ColCounty            = "County"
	ColYear              = "Year"
	ColDaysWithAQI       = "Days with AQI"
	ColGoodDays          = "Good Days"
	ColModerateDays      = "Moderate Days"
	ColUSGDays           = "Unhealthy for Sensitive Groups Days"
	ColUnhealthyDays     = "Unhealthy Days"
	ColVeryUnhealthyDays = "Very Unhealthy Days"
	ColHazardousDays     = "Hazardous Days"
	ColMaxAQI            = "Max AQI"
	ColP90AQI            = "90th Percentile AQI"
	ColMedianAQI         = "Median AQI"
	ColDaysCO            = "Days CO"
	ColDaysNO2           = "Days NO2"
	ColDaysOzone         = "Days Ozone"
	ColDaysPM25          = "Days PM2.5"
	ColDaysPM10          = "Days PM10"
)

// YearUnknown marks a record whose year could not be determined from its
// source. Such records never pass a year filter.
const YearUnknown = 0

var (
	// ErrNoData is returned when no source produced any record.
	ErrNoData = errors.New("no AQI records loaded")

	// ErrCountyNotFound is returned when a (state, county) pair has no
	// aggregate in the selected data.
	ErrCountyNotFound = errors.New("county not found")
)

// Record is one county-year row from a yearly source. Numeric fields hold
// NaN when the source cell was empty or not a number.
type Record struct {
	State  string
	County string
	Year   int

	// Required for aggregation.
	MedianAQI float64
	MaxAQI    float64

	// Optional daily-category counts and extras.
	P90AQI            float64
	DaysWithAQI       float64
	GoodDays          float64
	ModerateDays      float64
	USGDays           float64
	UnhealthyDays     float64
	VeryUnhealthyDays float64
	HazardousDays     float64
	DaysCO            float64
	DaysNO2           float64
	DaysOzone         float64
	DaysPM25          float64
	DaysPM10          float64

	// Source identifies the yearly source the record was loaded from.
	Source string
}

// NewRecord returns a record with every numeric field set to NaN.
func NewRecord(state, county string, year int) Record {
	nan := math.NaN()
	return Record{
		State:             state,
		County:            county,
		Year:              year,
		MedianAQI:         nan,
		MaxAQI:            nan,
		P90AQI:            nan,
		DaysWithAQI:       nan,
		GoodDays:          nan,
		ModerateDays:      nan,
		USGDays:           nan,
		UnhealthyDays:     nan,
		VeryUnhealthyDays: nan,
		HazardousDays:     nan,
		DaysCO:            nan,
		DaysNO2:           nan,
		DaysOzone:         nan,
		DaysPM25:          nan,
		DaysPM10:          nan,
	}
}

// Key returns the trimmed (State, County) grouping key.
func (r Record) Key() CountyKey {
	return CountyKey{State: strings.TrimSpace(r.State), County: strings.TrimSpace(r.County)}
}

// HighDays sums the days at or above "Unhealthy for Sensitive Groups".
// Missing counts contribute zero.
func (r Record) HighDays() float64 {
	return orZero(r.USGDays) + orZero(r.UnhealthyDays) + orZero(r.VeryUnhealthyDays) + orZero(r.HazardousDays)
}

// Columns returns the record as (header, value) pairs in EPA column order,
// with the injected year.
func (r Record) Columns() []Column {
	return []Column{
		{ColState, r.State},
		{ColCounty, r.County},
		{ColYear, r.Year},
		{ColDaysWithAQI, r.DaysWithAQI},
		{ColGoodDays, r.GoodDays},
		{ColModerateDays, r.ModerateDays},
		{ColUSGDays, r.USGDays},
		{ColUnhealthyDays, r.UnhealthyDays},
		{ColVeryUnhealthyDays, r.VeryUnhealthyDays},
		{ColHazardousDays, r.HazardousDays},
		{ColMaxAQI, r.MaxAQI},
		{ColP90AQI, r.P90AQI},
		{ColMedianAQI, r.MedianAQI},
		{ColDaysCO, r.DaysCO},
		{ColDaysNO2, r.DaysNO2},
		{ColDaysOzone, r.DaysOzone},
		{ColDaysPM25, r.DaysPM25},
		{ColDaysPM10, r.DaysPM10},
	}
}

// Column is a named value of a record.
type Column struct {
	Name  string
	Value any
}

func orZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
