package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/couchcryptid/aqi-risk-service/internal/adapter/csvsource"
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
)

// ValidateCommand reads every source and reports its outcome.
type ValidateCommand struct {
	env env
}

// Execute implements the go-flags Commander interface for ValidateCommand.
// It fails when any source cannot be loaded.
func (c *ValidateCommand) Execute(_ []string) error {
	cfg, logger, err := c.env.settings()
	if err != nil {
		return err
	}
	reader := csvsource.NewReader(cfg.FetchTimeout, logger)

	tw := tabwriter.NewWriter(c.env.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tSOURCE\tYEAR\tRECORDS\tCOUNTIES\tERROR")

	failed := 0
	for _, src := range cfg.Sources {
		year := "-"
		if y, ok := domain.YearFromName(src); ok {
			year = fmt.Sprint(y)
		}
		records, err := reader.Read(c.env.ctx, src)
		if err != nil {
			failed++
			fmt.Fprintf(tw, "FAIL\t%s\t%s\t-\t-\t%v\n", src, year, err)
			continue
		}
		fmt.Fprintf(tw, "OK\t%s\t%s\t%d\t%d\t\n", src, year, len(records), len(domain.AggregateCounties(records)))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(cfg.Sources))
	}
	return nil
}
