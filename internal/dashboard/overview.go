package dashboard

import (
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
)

// OverviewQuery selects the overview page data.
type OverviewQuery struct {
	Years      YearRange
	State      string
	TopN       int
	Percentile float64
}

// Overview summarizes double jeopardy classification over a year range.
type Overview struct {
	YearMin             int                      `json:"year_min"`
	YearMax             int                      `json:"year_max"`
	State               string                   `json:"state,omitempty"`
	Thresholds          Thresholds               `json:"thresholds"`
	TotalCounties       int                      `json:"total_counties"`
	DoubleJeopardy      int                      `json:"double_jeopardy"`
	DoubleJeopardyShare float64                  `json:"double_jeopardy_share"`
	CategoryCounts      map[domain.Category]int  `json:"category_counts"`
	Scatter             []ScatterPoint           `json:"scatter"`
	Top                 []domain.CountyAggregate `json:"top"`
}

// ScatterPoint is one county on the chronic vs acute scatter.
type ScatterPoint struct {
	State         string          `json:"state"`
	County        string          `json:"county"`
	MeanMedianAQI float64         `json:"mean_median_aqi"`
	MeanMaxAQI    float64         `json:"mean_max_aqi"`
	Category      domain.Category `json:"category"`
}

// Overview aggregates the records of the year range, narrows to State when
// set, and classifies the remaining counties at q.Percentile. The share is
// the percentage of counties in double jeopardy.
func (v *Views) Overview(t *domain.Table, q OverviewQuery) (Overview, error) {
	if err := checkPercentile(q.Percentile); err != nil {
		return Overview{}, err
	}
	if err := checkTopN(q.TopN); err != nil {
		return Overview{}, err
	}

	years := q.Years.resolve(t)
	counties := domain.AggregateCounties(domain.FilterYears(t.Records(), years.Min, years.Max))
	counties = domain.FilterState(counties, q.State)

	cls := domain.ClassifyByPercentile(counties, q.Percentile)

	labels := make([]domain.Category, len(cls.Counties))
	scatter := make([]ScatterPoint, 0, len(cls.Counties))
	for i, c := range cls.Counties {
		labels[i] = c.Category
		if v.excluded(c.Key()) {
			continue
		}
		scatter = append(scatter, ScatterPoint{
			State:         c.State,
			County:        c.County,
			MeanMedianAQI: c.MeanMedianAQI,
			MeanMaxAQI:    c.MeanMaxAQI,
			Category:      c.Category,
		})
	}
	counts := domain.CountCategories(domain.PercentileCategories, labels)

	out := Overview{
		YearMin:        years.Min,
		YearMax:        years.Max,
		State:          q.State,
		Thresholds:     thresholdsView(cls.Thresholds),
		TotalCounties:  len(counties),
		DoubleJeopardy: counts[domain.DoubleJeopardy],
		CategoryCounts: counts,
		Scatter:        scatter,
		Top:            domain.Top(counties, q.TopN, medianScore),
	}
	if out.TotalCounties > 0 {
		out.DoubleJeopardyShare = 100 * float64(out.DoubleJeopardy) / float64(out.TotalCounties)
	}
	return out, nil
}
