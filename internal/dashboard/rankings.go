package dashboard

import (
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
)

// RankingQuery selects a ranked county list over all loaded years.
type RankingQuery struct {
	State string
	TopN  int
}

// CountyList is a top-N list of aggregates.
type CountyList struct {
	State    string                   `json:"state,omitempty"`
	Total    int                      `json:"total"`
	Counties []domain.CountyAggregate `json:"counties"`
}

// Chronic lists the counties with the highest mean median AQI.
func (v *Views) Chronic(t *domain.Table, q RankingQuery) (CountyList, error) {
	if err := checkTopN(q.TopN); err != nil {
		return CountyList{}, err
	}
	counties := domain.FilterState(t.Aggregates(), q.State)
	return CountyList{
		State:    q.State,
		Total:    len(counties),
		Counties: domain.Top(counties, q.TopN, medianScore),
	}, nil
}

// AcuteQuery selects the acute ranking and its display mode.
type AcuteQuery struct {
	State   string
	TopN    int
	Outlier Outlier
}

// AcuteCounty carries the true mean max AQI and the value to plot.
type AcuteCounty struct {
	domain.CountyAggregate
	DisplayMaxAQI float64 `json:"display_max_aqi"`
}

// AcuteList is the top-N list by mean max AQI.
type AcuteList struct {
	State    string        `json:"state,omitempty"`
	Total    int           `json:"total"`
	Outlier  Outlier       `json:"outlier"`
	Counties []AcuteCounty `json:"counties"`
}

// Acute lists the counties with the highest mean max AQI. The outlier mode
// is applied to the listed values only.
func (v *Views) Acute(t *domain.Table, q AcuteQuery) (AcuteList, error) {
	if err := checkTopN(q.TopN); err != nil {
		return AcuteList{}, err
	}
	if q.Outlier == "" {
		q.Outlier = OutlierNone
	}
	counties := domain.FilterState(t.Aggregates(), q.State)
	top := domain.Top(counties, q.TopN, maxScore)

	values := make([]float64, len(top))
	for i, c := range top {
		values[i] = c.MeanMaxAQI
	}
	display := q.Outlier.Apply(values)

	out := AcuteList{
		State:    q.State,
		Total:    len(counties),
		Outlier:  q.Outlier,
		Counties: make([]AcuteCounty, len(top)),
	}
	for i, c := range top {
		out.Counties[i] = AcuteCounty{CountyAggregate: c, DisplayMaxAQI: display[i]}
	}
	return out, nil
}

// SeverityList is the top-N list by severity score.
type SeverityList struct {
	State    string                `json:"state,omitempty"`
	Total    int                   `json:"total"`
	Counties []domain.ScoredCounty `json:"counties"`
}

// Severity normalizes the counties of State (or all counties) and lists the
// highest severity scores.
func (v *Views) Severity(t *domain.Table, q RankingQuery) (SeverityList, error) {
	if err := checkTopN(q.TopN); err != nil {
		return SeverityList{}, err
	}
	scored := domain.ScoreCounties(domain.FilterState(t.Aggregates(), q.State))
	return SeverityList{
		State:    q.State,
		Total:    len(scored),
		Counties: domain.Top(scored, q.TopN, severityScore),
	}, nil
}

// DoubleJeopardy is the mean-threshold classification page.
type DoubleJeopardy struct {
	State             string                  `json:"state,omitempty"`
	Total             int                     `json:"total"`
	MeanVulnerability float64                 `json:"mean_vulnerability"`
	MeanHazard        float64                 `json:"mean_hazard"`
	CategoryCounts    map[domain.Category]int `json:"category_counts"`
	Top               []domain.ScoredCounty   `json:"top"`
	Counties          []domain.ScoredCounty   `json:"double_jeopardy_counties"`
}

// DoubleJeopardy classifies counties against the means of their normalized
// scores. Counties lists every Double Jeopardy county by severity.
func (v *Views) DoubleJeopardy(t *domain.Table, q RankingQuery) (DoubleJeopardy, error) {
	if err := checkTopN(q.TopN); err != nil {
		return DoubleJeopardy{}, err
	}
	scored := domain.ScoreCounties(domain.FilterState(t.Aggregates(), q.State))
	cls := domain.ClassifyByMean(scored)

	labels := make([]domain.Category, len(cls.Counties))
	dj := make([]domain.ScoredCounty, 0, len(cls.Counties))
	for i, c := range cls.Counties {
		labels[i] = c.Category
		if c.Category == domain.DoubleJeopardy {
			dj = append(dj, c)
		}
	}

	return DoubleJeopardy{
		State:             q.State,
		Total:             len(cls.Counties),
		MeanVulnerability: cls.MeanVulnerability,
		MeanHazard:        cls.MeanHazard,
		CategoryCounts:    domain.CountCategories(domain.MeanCategories, labels),
		Top:               domain.Top(cls.Counties, q.TopN, severityScore),
		Counties:          domain.SortBy(dj, severityScore),
	}, nil
}
