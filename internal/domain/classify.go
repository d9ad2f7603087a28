package domain

import (
	"math"

	"github.com/couchcryptid/aqi-risk-service/internal/stats"
)

// Category is the risk label assigned to a county.
type Category string

const (
	LowRisk           Category = "Low Risk"
	HighChronic       Category = "High Chronic"
	HighAcute         Category = "High Acute"
	HighVulnerability Category = "High Vulnerability"
	HighHazard        Category = "High Hazard"
	DoubleJeopardy    Category = "Double Jeopardy"
)

// PercentileCategories lists the labels produced by ClassifyByPercentile.
var PercentileCategories = []Category{LowRisk, HighChronic, HighAcute, DoubleJeopardy}

// MeanCategories lists the labels produced by ClassifyByMean.
var MeanCategories = []Category{LowRisk, HighVulnerability, HighHazard, DoubleJeopardy}

// Rule assigns Category to items matching Match.
type Rule[T any] struct {
	Category Category
	Match    func(T) bool
}

// Apply evaluates rules top to bottom starting from LowRisk. Every matching
// rule overwrites the previous label, so the last match wins.
func Apply[T any](rules []Rule[T], item T) Category {
	cat := LowRisk
	for _, r := range rules {
		if r.Match(item) {
			cat = r.Category
		}
	}
	return cat
}

// CountCategories tallies labels, zero-filling every category in order.
func CountCategories(order []Category, labels []Category) map[Category]int {
	counts := make(map[Category]int, len(order))
	for _, c := range order {
		counts[c] = 0
	}
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

// Thresholds are the cut-offs of a percentile classification. Either value
// is NaN when the sample had no finite value.
type Thresholds struct {
	Percentile float64 `json:"percentile"`
	Chronic    float64 `json:"chronic"`
	Acute      float64 `json:"acute"`
}

// ClassifiedCounty is an aggregate with its percentile-variant label.
type ClassifiedCounty struct {
	CountyAggregate
	Category Category `json:"category"`
}

// PercentileClassification is the result of ClassifyByPercentile.
type PercentileClassification struct {
	Counties   []ClassifiedCounty
	Thresholds Thresholds
}

// ClassifyByPercentile labels counties against the pct-th percentile
// (0-100) of mean median AQI (chronic) and mean max AQI (acute).
//
// A county above only the acute threshold after being labelled chronic is
// relabelled High Acute; meeting both yields Double Jeopardy.
func ClassifyByPercentile(aggs []CountyAggregate, pct float64) PercentileClassification {
	medians := make([]float64, len(aggs))
	maxes := make([]float64, len(aggs))
	for i, a := range aggs {
		medians[i] = a.MeanMedianAQI
		maxes[i] = a.MeanMaxAQI
	}
	p := pct / 100
	thr := Thresholds{
		Percentile: pct,
		Chronic:    stats.Percentile(medians, p),
		Acute:      stats.Percentile(maxes, p),
	}

	rules := percentileRules(thr)
	out := make([]ClassifiedCounty, len(aggs))
	for i, a := range aggs {
		out[i] = ClassifiedCounty{CountyAggregate: a, Category: Apply(rules, a)}
	}
	return PercentileClassification{Counties: out, Thresholds: thr}
}

// Comparisons against a NaN threshold are false, so an undefined threshold
// leaves every county Low Risk.
func percentileRules(thr Thresholds) []Rule[CountyAggregate] {
	chronic := func(a CountyAggregate) bool { return a.MeanMedianAQI >= thr.Chronic }
	acute := func(a CountyAggregate) bool { return a.MeanMaxAQI >= thr.Acute }
	return []Rule[CountyAggregate]{
		{HighChronic, chronic},
		{HighAcute, acute},
		{DoubleJeopardy, func(a CountyAggregate) bool { return chronic(a) && acute(a) }},
	}
}

// MeanClassification is the result of ClassifyByMean.
type MeanClassification struct {
	Counties          []ScoredCounty
	MeanVulnerability float64
	MeanHazard        float64
}

// ClassifyByMean labels scored counties against the sample means of their
// normalized chronic (vulnerability) and acute (hazard) scores. It also sets
// the vulnerability and hazard ranks. Input order is preserved.
func ClassifyByMean(scored []ScoredCounty) MeanClassification {
	v := make([]float64, len(scored))
	h := make([]float64, len(scored))
	for i, s := range scored {
		v[i] = s.NormChronic
		h[i] = s.NormAcute
	}
	meanV, meanH := stats.Mean(v), stats.Mean(h)
	if math.IsNaN(meanV) {
		meanV, meanH = 0, 0
	}

	rules := []Rule[ScoredCounty]{
		{HighVulnerability, func(s ScoredCounty) bool { return s.NormChronic >= meanV && s.NormAcute < meanH }},
		{HighHazard, func(s ScoredCounty) bool { return s.NormChronic < meanV && s.NormAcute >= meanH }},
		{DoubleJeopardy, func(s ScoredCounty) bool { return s.NormChronic >= meanV && s.NormAcute >= meanH }},
	}

	out := make([]ScoredCounty, len(scored))
	for i, s := range scored {
		s.Category = Apply(rules, s)
		out[i] = s
	}
	AssignRanks(out, func(s ScoredCounty) float64 { return s.NormChronic },
		func(s *ScoredCounty, r int) { s.VulnerabilityRank = r })
	AssignRanks(out, func(s ScoredCounty) float64 { return s.NormAcute },
		func(s *ScoredCounty, r int) { s.HazardRank = r })

	return MeanClassification{Counties: out, MeanVulnerability: meanV, MeanHazard: meanH}
}
