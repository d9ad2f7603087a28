package domain

import "github.com/couchcryptid/aqi-risk-service/internal/stats"

// ScoredCounty is an aggregate with normalized scores and ranks.
//
// NormChronic and NormAcute are the min-max normalized mean median AQI and
// mean max AQI. Severity is their average. Category is empty until a
// classifier sets it.
type ScoredCounty struct {
	CountyAggregate
	NormChronic       float64  `json:"norm_chronic"`
	NormAcute         float64  `json:"norm_acute"`
	Severity          float64  `json:"severity"`
	Category          Category `json:"category,omitempty"`
	ChronicRank       int      `json:"chronic_rank"`
	AcuteRank         int      `json:"acute_rank"`
	SeverityRank      int      `json:"severity_rank"`
	VulnerabilityRank int      `json:"vulnerability_rank,omitempty"`
	HazardRank        int      `json:"hazard_rank,omitempty"`
}

// ScoreCounties normalizes the aggregates, computes severity and assigns the
// chronic, acute and severity ranks. Input order is preserved.
func ScoreCounties(aggs []CountyAggregate) []ScoredCounty {
	medians := make([]float64, len(aggs))
	maxes := make([]float64, len(aggs))
	for i, a := range aggs {
		medians[i] = a.MeanMedianAQI
		maxes[i] = a.MeanMaxAQI
	}
	normC := stats.MinMaxNormalize(medians)
	normA := stats.MinMaxNormalize(maxes)

	out := make([]ScoredCounty, len(aggs))
	for i, a := range aggs {
		out[i] = ScoredCounty{
			CountyAggregate: a,
			NormChronic:     normC[i],
			NormAcute:       normA[i],
			Severity:        (normC[i] + normA[i]) / 2,
		}
	}

	AssignRanks(out, func(s ScoredCounty) float64 { return s.MeanMedianAQI },
		func(s *ScoredCounty, r int) { s.ChronicRank = r })
	AssignRanks(out, func(s ScoredCounty) float64 { return s.MeanMaxAQI },
		func(s *ScoredCounty, r int) { s.AcuteRank = r })
	AssignRanks(out, func(s ScoredCounty) float64 { return s.Severity },
		func(s *ScoredCounty, r int) { s.SeverityRank = r })
	return out
}

// ApplyPercentileCategories copies the labels of a percentile classification
// onto scored counties with the same key.
func ApplyPercentileCategories(scored []ScoredCounty, cls PercentileClassification) []ScoredCounty {
	labels := make(map[CountyKey]Category, len(cls.Counties))
	for _, c := range cls.Counties {
		labels[c.Key()] = c.Category
	}
	out := make([]ScoredCounty, len(scored))
	for i, s := range scored {
		if cat, ok := labels[s.Key()]; ok {
			s.Category = cat
		}
		out[i] = s
	}
	return out
}
