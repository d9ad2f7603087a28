package domain

import (
	"math"
	"slices"
	"strings"

	"github.com/couchcryptid/aqi-risk-service/internal/stats"
)

// YearStat summarizes one county's records for a single year.
type YearStat struct {
	Year          int
	MedianAQI     float64
	MaxAQI        float64
	DaysWithAQI   float64
	GoodDays      float64
	UnhealthyDays float64
	Records       int
}

// CountyRecords returns the records whose trimmed state and county equal key.
func CountyRecords(records []Record, key CountyKey) []Record {
	var out []Record
	for i := range records {
		if records[i].Key() == key {
			out = append(out, records[i])
		}
	}
	return out
}

// YearlyProfile groups a county's records by year, ascending. AQI values are
// averaged over the finite values of the year (NaN when there are none).
// Day counts are summed with missing counts as zero. Records of unknown
// year are skipped.
func YearlyProfile(records []Record) []YearStat {
	type acc struct {
		stat           YearStat
		medSum, maxSum float64
		medN, maxN     int
	}
	byYear := make(map[int]*acc)

	for i := range records {
		r := records[i]
		if r.Year == YearUnknown {
			continue
		}
		a, ok := byYear[r.Year]
		if !ok {
			a = &acc{stat: YearStat{Year: r.Year}}
			byYear[r.Year] = a
		}
		if stats.IsFinite(r.MedianAQI) {
			a.medSum += r.MedianAQI
			a.medN++
		}
		if stats.IsFinite(r.MaxAQI) {
			a.maxSum += r.MaxAQI
			a.maxN++
		}
		a.stat.DaysWithAQI += orZero(r.DaysWithAQI)
		a.stat.GoodDays += orZero(r.GoodDays)
		a.stat.UnhealthyDays += orZero(r.UnhealthyDays)
		a.stat.Records++
	}

	out := make([]YearStat, 0, len(byYear))
	for _, a := range byYear {
		a.stat.MedianAQI = meanOrNaN(a.medSum, a.medN)
		a.stat.MaxAQI = meanOrNaN(a.maxSum, a.maxN)
		out = append(out, a.stat)
	}
	slices.SortFunc(out, func(a, b YearStat) int { return a.Year - b.Year })
	return out
}

// StatusLabel describes a percentile classification of one county the way
// the drilldown reports it: "Double Jeopardy" when both thresholds are met,
// otherwise the comma-joined high flags, or "Low Risk".
func StatusLabel(highChronic, highAcute bool) string {
	if highChronic && highAcute {
		return string(DoubleJeopardy)
	}
	var parts []string
	if highChronic {
		parts = append(parts, string(HighChronic))
	}
	if highAcute {
		parts = append(parts, string(HighAcute))
	}
	if len(parts) == 0 {
		return string(LowRisk)
	}
	return strings.Join(parts, ", ")
}

func meanOrNaN(sum float64, n int) float64 {
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
