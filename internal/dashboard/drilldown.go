package dashboard

import (
	"fmt"

	"github.com/couchcryptid/aqi-risk-service/internal/domain"
)

// DrilldownQuery selects one county and the classification percentile.
type DrilldownQuery struct {
	State      string
	County     string
	Percentile float64
}

// YearPoint is one year of a county profile. AQI values are null for a year
// with no usable reading.
type YearPoint struct {
	Year          int      `json:"year"`
	MedianAQI     *float64 `json:"median_aqi"`
	MaxAQI        *float64 `json:"max_aqi"`
	DaysWithAQI   float64  `json:"days_with_aqi"`
	GoodDays      float64  `json:"good_days"`
	UnhealthyDays float64  `json:"unhealthy_days"`
}

// Drilldown is the single-county profile page.
type Drilldown struct {
	County         domain.CountyAggregate `json:"county"`
	Yearly         []YearPoint            `json:"yearly"`
	Thresholds     Thresholds             `json:"thresholds"`
	HighChronic    bool                   `json:"high_chronic"`
	HighAcute      bool                   `json:"high_acute"`
	DoubleJeopardy bool                   `json:"double_jeopardy"`
	Status         string                 `json:"status"`
	ChronicRank    int                    `json:"chronic_rank"`
	AcuteRank      int                    `json:"acute_rank"`
	TotalCounties  int                    `json:"total_counties"`
}

// Drilldown profiles one county against thresholds computed over every
// county. It returns domain.ErrCountyNotFound when the county has no
// aggregate.
func (v *Views) Drilldown(t *domain.Table, q DrilldownQuery) (Drilldown, error) {
	if err := checkPercentile(q.Percentile); err != nil {
		return Drilldown{}, err
	}
	key := domain.CountyKey{State: q.State, County: q.County}

	scored := domain.ScoreCounties(t.Aggregates())
	county, ok := domain.FindCounty(scored, key)
	if !ok {
		return Drilldown{}, fmt.Errorf("drilldown %s: %w", key, domain.ErrCountyNotFound)
	}

	aggs := make([]domain.CountyAggregate, len(scored))
	for i, s := range scored {
		aggs[i] = s.CountyAggregate
	}
	thr := domain.ClassifyByPercentile(aggs, q.Percentile).Thresholds

	highChronic := county.MeanMedianAQI >= thr.Chronic
	highAcute := county.MeanMaxAQI >= thr.Acute

	profile := domain.YearlyProfile(domain.CountyRecords(t.Records(), key))
	yearly := make([]YearPoint, len(profile))
	for i, y := range profile {
		yearly[i] = YearPoint{
			Year:          y.Year,
			MedianAQI:     optional(y.MedianAQI),
			MaxAQI:        optional(y.MaxAQI),
			DaysWithAQI:   y.DaysWithAQI,
			GoodDays:      y.GoodDays,
			UnhealthyDays: y.UnhealthyDays,
		}
	}

	return Drilldown{
		County:         county.CountyAggregate,
		Yearly:         yearly,
		Thresholds:     thresholdsView(thr),
		HighChronic:    highChronic,
		HighAcute:      highAcute,
		DoubleJeopardy: highChronic && highAcute,
		Status:         domain.StatusLabel(highChronic, highAcute),
		ChronicRank:    county.ChronicRank,
		AcuteRank:      county.AcuteRank,
		TotalCounties:  len(scored),
	}, nil
}

// CountyRows returns the raw records of one county, every year included.
func (v *Views) CountyRows(t *domain.Table, state, county string) ([]domain.Record, error) {
	key := domain.CountyKey{State: state, County: county}
	rows := domain.CountyRecords(t.Records(), key)
	if len(rows) == 0 {
		return nil, fmt.Errorf("county rows %s: %w", key, domain.ErrCountyNotFound)
	}
	return rows, nil
}
