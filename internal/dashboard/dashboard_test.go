package dashboard

import (
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/aqi-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(state, county string, year int, median, maxAQI, usg float64) domain.Record {
	r := domain.NewRecord(state, county, year)
	r.MedianAQI = median
	r.MaxAQI = maxAQI
	r.USGDays = usg
	r.DaysWithAQI = 365
	r.GoodDays = 300
	return r
}

// Aggregates over both years:
//
//	California|Fresno 65/325  California|Mono 20/900  Iowa|Polk 10/50
//	Ohio|Adams        35/100  Ohio|Butler     50/200
func fixtureTable() *domain.Table {
	fresno := rec("California", "Fresno", 2021, 60, 300, 10)
	fresno.UnhealthyDays = 2
	return domain.NewTable([]domain.Record{
		rec("Ohio", "Adams", 2021, 30, 90, 1),
		rec("Ohio", "Adams", 2022, 40, 110, math.NaN()),
		rec("Ohio", "Butler", 2021, 50, 200, 0),
		rec("California", "Mono", 2021, 20, 900, math.NaN()),
		fresno,
		rec("California", "Fresno", 2022, 70, 350, 5),
		rec("Iowa", "Polk", 2022, 10, 50, 0),
	}, nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func counties[T domain.Keyed](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key().String()
	}
	return out
}

func TestOverview(t *testing.T) {
	v := New(nil)

	got, err := v.Overview(fixtureTable(), OverviewQuery{Percentile: 50, TopN: 2})
	require.NoError(t, err)

	assert.Equal(t, 2021, got.YearMin)
	assert.Equal(t, 2022, got.YearMax)
	require.NotNil(t, got.Thresholds.Chronic)
	assert.InDelta(t, 35, *got.Thresholds.Chronic, 1e-9)
	assert.InDelta(t, 200, *got.Thresholds.Acute, 1e-9)
	assert.Equal(t, 5, got.TotalCounties)
	assert.Equal(t, 2, got.DoubleJeopardy)
	assert.InDelta(t, 40, got.DoubleJeopardyShare, 1e-9)
	assert.Equal(t, map[domain.Category]int{
		domain.LowRisk:        1,
		domain.HighChronic:    1,
		domain.HighAcute:      1,
		domain.DoubleJeopardy: 2,
	}, got.CategoryCounts)

	assert.Len(t, got.Scatter, 4)
	for _, p := range got.Scatter {
		assert.NotEqual(t, "Mono", p.County, "Mono is excluded from the scatter")
	}
	assert.Equal(t, []string{"California|Fresno", "Ohio|Butler"}, counties(got.Top))
}

func TestOverview_InvertedYearsAndState(t *testing.T) {
	v := New(nil)

	got, err := v.Overview(fixtureTable(), OverviewQuery{
		Years:      YearRange{Min: 2022, Max: 2021},
		State:      "Ohio",
		Percentile: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, 2021, got.YearMin)
	assert.Equal(t, 2022, got.YearMax)
	assert.Equal(t, 2, got.TotalCounties)
	assert.InDelta(t, 42.5, *got.Thresholds.Chronic, 1e-9)
	assert.InDelta(t, 150, *got.Thresholds.Acute, 1e-9)
	assert.Equal(t, 1, got.CategoryCounts[domain.LowRisk])
	assert.Equal(t, 1, got.DoubleJeopardy)
}

func TestOverview_SingleYear(t *testing.T) {
	got, err := New(nil).Overview(fixtureTable(), OverviewQuery{Years: YearRange{Min: 2022, Max: 2022}, Percentile: 90})
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalCounties)
}

func TestOverview_EmptySelection(t *testing.T) {
	got, err := New(nil).Overview(fixtureTable(), OverviewQuery{State: "Texas", Percentile: 90})
	require.NoError(t, err)
	assert.Zero(t, got.TotalCounties)
	assert.Zero(t, got.DoubleJeopardyShare)
	assert.Nil(t, got.Thresholds.Chronic)
	assert.Nil(t, got.Thresholds.Acute)
}

func TestOverview_InvalidQuery(t *testing.T) {
	v := New(nil)
	for _, q := range []OverviewQuery{
		{Percentile: 101},
		{Percentile: -1},
		{Percentile: math.NaN()},
		{Percentile: 90, TopN: -1},
	} {
		_, err := v.Overview(fixtureTable(), q)
		require.ErrorIs(t, err, ErrInvalidQuery)
	}
}

func TestNew_CustomExclusions(t *testing.T) {
	v := New([]domain.CountyKey{{State: " iowa", County: "POLK "}})
	got, err := v.Overview(fixtureTable(), OverviewQuery{Percentile: 90})
	require.NoError(t, err)
	assert.Len(t, got.Scatter, 4)
	for _, p := range got.Scatter {
		assert.NotEqual(t, "Polk", p.County)
	}
}

func TestChronic(t *testing.T) {
	got, err := New(nil).Chronic(fixtureTable(), RankingQuery{TopN: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, []string{"California|Fresno", "Ohio|Butler", "Ohio|Adams"}, counties(got.Counties))

	got, err = New(nil).Chronic(fixtureTable(), RankingQuery{State: "Ohio"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, []string{"Ohio|Butler", "Ohio|Adams"}, counties(got.Counties))
}

func TestAcute(t *testing.T) {
	tests := []struct {
		name    string
		outlier Outlier
		topN    int
		display []float64
	}{
		{"none", OutlierNone, 2, []float64{900, 325}},
		{"default is none", "", 2, []float64{900, 325}},
		{"cap500", OutlierCap500, 2, []float64{500, 325}},
		{"winsor1", OutlierWinsor1, 0, []float64{325, 325, 200, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(nil).Acute(fixtureTable(), AcuteQuery{TopN: tt.topN, Outlier: tt.outlier})
			require.NoError(t, err)

			display := make([]float64, len(got.Counties))
			for i, c := range got.Counties {
				display[i] = c.DisplayMaxAQI
			}
			assert.Equal(t, tt.display, display)
			assert.Equal(t, 900.0, got.Counties[0].MeanMaxAQI, "true value is kept")
			assert.Equal(t, "Mono", got.Counties[0].County)
		})
	}
}

func TestParseOutlier(t *testing.T) {
	o, err := ParseOutlier("CAP500")
	require.NoError(t, err)
	assert.Equal(t, OutlierCap500, o)

	o, err = ParseOutlier("")
	require.NoError(t, err)
	assert.Equal(t, OutlierNone, o)

	_, err = ParseOutlier("log")
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSeverity(t *testing.T) {
	got, err := New(nil).Severity(fixtureTable(), RankingQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"California|Fresno",
		"California|Mono",
		"Ohio|Butler",
		"Ohio|Adams",
		"Iowa|Polk",
	}, counties(got.Counties))
	assert.InDelta(t, (1+275.0/850)/2, got.Counties[0].Severity, 1e-9)
	assert.Equal(t, 1, got.Counties[0].SeverityRank)
	assert.Equal(t, 5, got.Counties[4].SeverityRank)
}

func TestSeverity_NormalizesWithinState(t *testing.T) {
	got, err := New(nil).Severity(fixtureTable(), RankingQuery{State: "Ohio"})
	require.NoError(t, err)
	require.Len(t, got.Counties, 2)
	assert.Equal(t, 1.0, got.Counties[0].Severity)
	assert.Equal(t, 0.0, got.Counties[1].Severity)
}

func TestDoubleJeopardy(t *testing.T) {
	got, err := New(nil).DoubleJeopardy(fixtureTable(), RankingQuery{TopN: 3})
	require.NoError(t, err)

	assert.Equal(t, 5, got.Total)
	assert.Equal(t, map[domain.Category]int{
		domain.LowRisk:           2,
		domain.HighVulnerability: 1,
		domain.HighHazard:        1,
		domain.DoubleJeopardy:    1,
	}, got.CategoryCounts)
	assert.Equal(t, []string{"California|Fresno"}, counties(got.Counties))
	assert.Equal(t, []string{"California|Fresno", "California|Mono", "Ohio|Butler"}, counties(got.Top))
	assert.Equal(t, 1, got.Counties[0].VulnerabilityRank)
	assert.Equal(t, 2, got.Counties[0].HazardRank)
}

func TestDrilldown(t *testing.T) {
	got, err := New(nil).Drilldown(fixtureTable(), DrilldownQuery{State: "Ohio", County: "Adams", Percentile: 50})
	require.NoError(t, err)

	assert.Equal(t, 35.0, got.County.MeanMedianAQI)
	assert.True(t, got.HighChronic)
	assert.False(t, got.HighAcute)
	assert.False(t, got.DoubleJeopardy)
	assert.Equal(t, "High Chronic", got.Status)
	assert.Equal(t, 3, got.ChronicRank)
	assert.Equal(t, 4, got.AcuteRank)
	assert.Equal(t, 5, got.TotalCounties)

	require.Len(t, got.Yearly, 2)
	assert.Equal(t, 2021, got.Yearly[0].Year)
	assert.Equal(t, 30.0, *got.Yearly[0].MedianAQI)
	assert.Equal(t, 110.0, *got.Yearly[1].MaxAQI)
	assert.Equal(t, 365.0, got.Yearly[1].DaysWithAQI)
}

func TestDrilldown_DoubleJeopardy(t *testing.T) {
	got, err := New(nil).Drilldown(fixtureTable(), DrilldownQuery{State: "California", County: "Fresno", Percentile: 50})
	require.NoError(t, err)
	assert.True(t, got.DoubleJeopardy)
	assert.Equal(t, "Double Jeopardy", got.Status)
}

func TestDrilldown_NotFound(t *testing.T) {
	_, err := New(nil).Drilldown(fixtureTable(), DrilldownQuery{State: "Ohio", County: "Nope", Percentile: 90})
	require.ErrorIs(t, err, domain.ErrCountyNotFound)

	_, err = New(nil).Drilldown(fixtureTable(), DrilldownQuery{State: "Ohio", County: "Adams", Percentile: 200})
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestCountyRows(t *testing.T) {
	rows, err := New(nil).CountyRows(fixtureTable(), "California", "Fresno")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = New(nil).CountyRows(fixtureTable(), "California", "Nope")
	require.ErrorIs(t, err, domain.ErrCountyNotFound)
}

func TestHeatmap(t *testing.T) {
	got, err := New(nil).Heatmap(fixtureTable(), HeatmapQuery{})
	require.NoError(t, err)

	assert.Equal(t, domain.ScopeUS, got.Scope)
	assert.Equal(t, 2, got.YearsLoaded)
	assert.Equal(t, 18.0, got.Total)
	require.NotNil(t, got.MaxState)
	assert.Equal(t, "CA", got.MaxState.Abbreviation)
	assert.Equal(t, 17.0, got.MaxState.HighDays)
	assert.Len(t, got.States, 3)
}

func TestHeatmap_YearRange(t *testing.T) {
	got, err := New(nil).Heatmap(fixtureTable(), HeatmapQuery{Years: YearRange{Min: 2022, Max: 2022}, Scope: domain.ScopeAll})
	require.NoError(t, err)
	assert.Equal(t, 1, got.YearsLoaded)
	assert.Equal(t, 5.0, got.Total)
}

func TestHeatmap_InvalidScope(t *testing.T) {
	_, err := New(nil).Heatmap(fixtureTable(), HeatmapQuery{Scope: "world"})
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSelectors(t *testing.T) {
	v := New(nil)
	table := fixtureTable()
	assert.Equal(t, []int{2021, 2022}, v.Years(table))
	assert.Equal(t, []string{"California", "Iowa", "Ohio"}, v.States(table))
	assert.Equal(t, []string{"Adams", "Butler"}, v.Counties(table, "Ohio"))
	assert.Empty(t, v.Counties(table, "Texas"))
}
