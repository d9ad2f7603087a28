// Package cli implements aqictl, the offline companion to the risk service:
// it loads the yearly sources once and exports, validates, classifies or
// publishes from the command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/couchcryptid/aqi-risk-service/internal/adapter/csvsource"
	"github.com/couchcryptid/aqi-risk-service/internal/config"
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
	"github.com/couchcryptid/aqi-risk-service/internal/observability"
	"github.com/couchcryptid/aqi-risk-service/internal/pipeline"
	goflags "github.com/jessevdk/go-flags"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

// GlobalFlags are accepted by every subcommand.
type GlobalFlags struct {
	Sources    []string `short:"s" long:"source" description:"Yearly source path or URL (repeatable); defaults to AQI_SOURCES, AQI_MANIFEST or the bundled files"`
	Percentile float64  `short:"p" long:"percentile" description:"Double jeopardy threshold percentile (0-100)" default:"90"`
	Verbose    bool     `short:"v" long:"verbose" description:"Log source loading progress"`
}

type commands struct {
	Export   *ExportCommand
	Validate *ValidateCommand
	Classify *ClassifyCommand
	Publish  *PublishCommand
}

// env is what every subcommand shares besides the global flags.
type env struct {
	ctx     context.Context
	globals *GlobalFlags
	out     io.Writer
}

func buildParser(ctx context.Context, out io.Writer) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags
	e := env{ctx: ctx, globals: &globals, out: out}

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "aqictl"
	parser.LongDescription = "Load EPA annual county AQI summaries and derive chronic and acute risk tables."

	cmds := &commands{
		Export:   &ExportCommand{env: e},
		Validate: &ValidateCommand{env: e},
		Classify: &ClassifyCommand{env: e},
		Publish:  &PublishCommand{env: e},
	}

	parser.AddCommand("export", "Write the county tables as CSV", "Write double_jeopardy_counties.csv, top_severity_counties.csv and all_county_statistics.csv, optionally as one XLSX workbook.", cmds.Export)
	parser.AddCommand("validate", "Check every source loads", "Fetch and parse every yearly source and report its year and record count.", cmds.Validate)
	parser.AddCommand("classify", "Print the risk classification", "Print thresholds, category counts and the top counties for the percentile or mean variant.", cmds.Classify)
	parser.AddCommand("publish", "Publish county snapshots to Kafka", "Publish one risk snapshot per county to the configured Kafka topic.", cmds.Publish)

	return parser, &globals, cmds
}

// Run parses args and executes the matched subcommand, writing results to
// out.
func Run(ctx context.Context, args []string, out io.Writer) error {
	parser, _, _ := buildParser(ctx, out)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *goflags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

// session is a loaded record table with the settings it was loaded under.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	table   *domain.Table
}

func (e env) settings() (*config.Config, *slog.Logger, error) {
	pct := e.globals.Percentile
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return nil, nil, errors.New("percentile must be between 0 and 100")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if len(e.globals.Sources) > 0 {
		cfg.Sources = e.globals.Sources
	}

	level := slog.LevelWarn
	if e.globals.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

// open loads every configured source into a table.
func (e env) open() (*session, error) {
	cfg, logger, err := e.settings()
	if err != nil {
		return nil, err
	}
	metrics := observability.NewMetricsWith(prometheus.NewRegistry())
	reader := csvsource.NewReader(cfg.FetchTimeout, logger)
	p := pipeline.New(reader, cfg.Sources, logger, metrics, clockwork.NewRealClock())

	table, err := p.Load(e.ctx)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, metrics: metrics, table: table}, nil
}
