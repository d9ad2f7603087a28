package export

import (
	"fmt"

	"github.com/couchcryptid/aqi-risk-service/internal/domain"
)

// Export names.
const (
	DoubleJeopardyCountiesName = "double_jeopardy_counties"
	TopSeverityCountiesName    = "top_severity_counties"
	AllCountyStatisticsName    = "all_county_statistics"
)

// TopSeverityLimit is the number of counties in the top severity export.
const TopSeverityLimit = 50

// Names lists the county exports in download order.
var Names = []string{DoubleJeopardyCountiesName, TopSeverityCountiesName, AllCountyStatisticsName}

var (
	doubleJeopardyColumns = []string{
		"County", "State", "Mean_Median_AQI", "Mean_Max_AQI",
		"Chronic_Rank", "Acute_Rank", "Severity_Score", "Severity_Rank",
	}
	topSeverityColumns = []string{
		"County", "State", "Mean_Median_AQI", "Mean_Max_AQI",
		"Norm_Chronic", "Norm_Acute", "Severity_Score", "Severity_Rank",
	}
	allCountyColumns = []string{
		"County", "State", "Mean_Median_AQI", "Mean_Max_AQI",
		"Norm_Chronic", "Norm_Acute", "Severity_Score", "Risk_Category",
		"Chronic_Rank", "Acute_Rank", "Severity_Rank",
	}
)

// Build derives the named export from every loaded year, classifying at
// pct (0-100).
func Build(t *domain.Table, name string, pct float64) (Table, error) {
	scored := classified(t.Aggregates(), pct)
	switch name {
	case DoubleJeopardyCountiesName:
		return doubleJeopardyCounties(scored), nil
	case TopSeverityCountiesName:
		return topSeverityCounties(scored), nil
	case AllCountyStatisticsName:
		return allCountyStatistics(scored), nil
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownExport, name)
	}
}

// BuildAll derives every county export, in Names order.
func BuildAll(t *domain.Table, pct float64) []Table {
	scored := classified(t.Aggregates(), pct)
	return []Table{
		doubleJeopardyCounties(scored),
		topSeverityCounties(scored),
		allCountyStatistics(scored),
	}
}

// SourceColumn names the column holding the file or URL a raw row was
// loaded from.
const SourceColumn = "Source"

// CountyRows exports the raw records of one county with every EPA column,
// followed by the source each record was loaded from.
func CountyRows(records []domain.Record, state, county string) Table {
	t := Table{Name: county + "_" + state + "_aqi_rows"}
	for _, r := range records {
		cols := r.Columns()
		row := make(Row, len(cols), len(cols)+1)
		for i, c := range cols {
			row[i] = Field{Name: c.Name, Value: c.Value}
		}
		t.Rows = append(t.Rows, append(row, Field{Name: SourceColumn, Value: r.Source}))
	}
	if len(t.Rows) == 0 {
		cols := columnNames(domain.NewRecord("", "", domain.YearUnknown).Columns())
		t.Columns = append(cols, SourceColumn)
	}
	return t
}

// classified scores the aggregates and labels them with the percentile
// variant, sorted by severity.
func classified(aggs []domain.CountyAggregate, pct float64) []domain.ScoredCounty {
	scored := domain.ApplyPercentileCategories(
		domain.ScoreCounties(aggs),
		domain.ClassifyByPercentile(aggs, pct),
	)
	return domain.SortBy(scored, func(s domain.ScoredCounty) float64 { return s.Severity })
}

func doubleJeopardyCounties(scored []domain.ScoredCounty) Table {
	t := Table{Name: DoubleJeopardyCountiesName, Columns: doubleJeopardyColumns}
	for _, s := range scored {
		if s.Category != domain.DoubleJeopardy {
			continue
		}
		t.Rows = append(t.Rows, Row{
			{"County", s.County},
			{"State", s.State},
			{"Mean_Median_AQI", s.MeanMedianAQI},
			{"Mean_Max_AQI", s.MeanMaxAQI},
			{"Chronic_Rank", s.ChronicRank},
			{"Acute_Rank", s.AcuteRank},
			{"Severity_Score", s.Severity},
			{"Severity_Rank", s.SeverityRank},
		})
	}
	return t
}

func topSeverityCounties(scored []domain.ScoredCounty) Table {
	t := Table{Name: TopSeverityCountiesName, Columns: topSeverityColumns}
	for i, s := range scored {
		if i == TopSeverityLimit {
			break
		}
		t.Rows = append(t.Rows, Row{
			{"County", s.County},
			{"State", s.State},
			{"Mean_Median_AQI", s.MeanMedianAQI},
			{"Mean_Max_AQI", s.MeanMaxAQI},
			{"Norm_Chronic", s.NormChronic},
			{"Norm_Acute", s.NormAcute},
			{"Severity_Score", s.Severity},
			{"Severity_Rank", s.SeverityRank},
		})
	}
	return t
}

func allCountyStatistics(scored []domain.ScoredCounty) Table {
	t := Table{Name: AllCountyStatisticsName, Columns: allCountyColumns}
	for _, s := range scored {
		t.Rows = append(t.Rows, Row{
			{"County", s.County},
			{"State", s.State},
			{"Mean_Median_AQI", s.MeanMedianAQI},
			{"Mean_Max_AQI", s.MeanMaxAQI},
			{"Norm_Chronic", s.NormChronic},
			{"Norm_Acute", s.NormAcute},
			{"Severity_Score", s.Severity},
			{"Risk_Category", string(s.Category)},
			{"Chronic_Rank", s.ChronicRank},
			{"Acute_Rank", s.AcuteRank},
			{"Severity_Rank", s.SeverityRank},
		})
	}
	return t
}

func columnNames(cols []domain.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
