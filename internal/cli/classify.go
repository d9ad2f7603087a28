package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/couchcryptid/aqi-risk-service/internal/dashboard"
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
)

// ClassifyCommand prints the risk classification over all loaded years.
type ClassifyCommand struct {
	State string `long:"state" description:"Only classify counties of this state"`
	Top   int    `long:"top" description:"Number of counties to list (0 lists all)" default:"15"`
	Mean  bool   `long:"mean" description:"Use the mean-threshold variant instead of percentiles"`
	JSON  bool   `long:"json" description:"Output in JSON format"`

	env env
}

type summaryRow struct {
	county   string
	state    string
	median   float64
	maxAQI   float64
	category domain.Category
}

// Execute implements the go-flags Commander interface for ClassifyCommand.
func (c *ClassifyCommand) Execute(_ []string) error {
	s, err := c.env.open()
	if err != nil {
		return err
	}
	if c.Mean {
		return c.mean(s.table)
	}
	return c.percentile(s.table)
}

func (c *ClassifyCommand) percentile(t *domain.Table) error {
	ov, err := dashboard.New(nil).Overview(t, dashboard.OverviewQuery{
		State:      c.State,
		TopN:       c.Top,
		Percentile: c.env.globals.Percentile,
	})
	if err != nil {
		return err
	}
	if c.JSON {
		return c.writeJSON(ov)
	}

	cls := domain.ClassifyByPercentile(domain.FilterState(t.Aggregates(), c.State), c.env.globals.Percentile)
	labels := make(map[domain.CountyKey]domain.Category, len(cls.Counties))
	for _, cc := range cls.Counties {
		labels[cc.Key()] = cc.Category
	}
	rows := make([]summaryRow, len(ov.Top))
	for i, a := range ov.Top {
		rows[i] = summaryRow{a.County, a.State, a.MeanMedianAQI, a.MeanMaxAQI, labels[a.Key()]}
	}

	fmt.Fprintf(c.env.out, "%d-%d at the %g percentile: chronic >= %s, acute >= %s over %d counties\n",
		ov.YearMin, ov.YearMax, ov.Thresholds.Percentile,
		formatThreshold(ov.Thresholds.Chronic), formatThreshold(ov.Thresholds.Acute), ov.TotalCounties)
	return c.writeSummary(ov.CategoryCounts, domain.PercentileCategories, rows)
}

func (c *ClassifyCommand) mean(t *domain.Table) error {
	dj, err := dashboard.New(nil).DoubleJeopardy(t, dashboard.RankingQuery{State: c.State, TopN: c.Top})
	if err != nil {
		return err
	}
	if c.JSON {
		return c.writeJSON(dj)
	}

	rows := make([]summaryRow, len(dj.Top))
	for i, s := range dj.Top {
		rows[i] = summaryRow{s.County, s.State, s.MeanMedianAQI, s.MeanMaxAQI, s.Category}
	}
	fmt.Fprintf(c.env.out, "mean vulnerability %.3f, mean hazard %.3f over %d counties\n",
		dj.MeanVulnerability, dj.MeanHazard, dj.Total)
	return c.writeSummary(dj.CategoryCounts, domain.MeanCategories, rows)
}

func (c *ClassifyCommand) writeJSON(v any) error {
	enc := json.NewEncoder(c.env.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode classification: %w", err)
	}
	return nil
}

func (c *ClassifyCommand) writeSummary(counts map[domain.Category]int, order []domain.Category, rows []summaryRow) error {
	tw := tabwriter.NewWriter(c.env.out, 0, 4, 2, ' ', 0)
	for _, cat := range order {
		fmt.Fprintf(tw, "%s\t%d\n", cat, counts[cat])
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "COUNTY\tSTATE\tMEAN MEDIAN AQI\tMEAN MAX AQI\tCATEGORY")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%s\n", r.county, r.state, r.median, r.maxAQI, r.category)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func formatThreshold(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *v)
}
