package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/aqi-risk-service/internal/domain"
	"github.com/couchcryptid/aqi-risk-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// SourceReader reads every record of one yearly source.
type SourceReader interface {
	Read(ctx context.Context, location string) ([]domain.Record, error)
}

// Pipeline loads the yearly sources into the record table once and serves
// it to every view afterwards.
type Pipeline struct {
	reader  SourceReader
	sources []string
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	table atomic.Pointer[domain.Table]
	ready atomic.Bool
}

// New creates a Pipeline over the ordered source locations.
func New(reader SourceReader, sources []string, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		reader:  reader,
		sources: sources,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// CheckReadiness returns nil once the table is loaded, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("record table has not been loaded yet")
	}
	return nil
}

// Table returns the loaded table, or nil before Load succeeds.
func (p *Pipeline) Table() *domain.Table {
	return p.table.Load()
}

// Load reads the sources sequentially, in order, and concatenates their
// records. A source that fails to fetch or parse is logged, counted, and
// skipped. Load returns domain.ErrNoData when no source yields a record.
func (p *Pipeline) Load(ctx context.Context) (*domain.Table, error) {
	start := p.clock.Now()
	p.logger.Info("loading sources", "count", len(p.sources))

	var records []domain.Record
	statuses := make([]domain.SourceStatus, 0, len(p.sources))

	for _, src := range p.sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load sources: %w", err)
		}

		status := domain.SourceStatus{Location: src}
		if y, ok := domain.YearFromName(src); ok {
			status.Year = y
		}

		srcStart := p.clock.Now()
		recs, err := p.reader.Read(ctx, src)
		elapsed := p.clock.Since(srcStart).Seconds()
		if err != nil {
			p.logger.Warn("source load failed, skipping", "source", src, "error", err)
			p.metrics.SourcesFailed.Inc()
			p.metrics.SourceDuration.WithLabelValues("error").Observe(elapsed)
			status.Error = err.Error()
			statuses = append(statuses, status)
			continue
		}

		p.metrics.SourcesLoaded.Inc()
		p.metrics.RecordsLoaded.Add(float64(len(recs)))
		p.metrics.SourceDuration.WithLabelValues("success").Observe(elapsed)
		p.logger.Debug("source loaded", "source", src, "records", len(recs))

		status.Records = len(recs)
		statuses = append(statuses, status)
		records = append(records, recs...)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("load sources: %w", domain.ErrNoData)
	}

	table := domain.NewTable(records, statuses, p.clock.Now())
	p.table.Store(table)
	p.ready.Store(true)
	p.metrics.TableReady.Set(1)
	p.metrics.LoadDuration.Observe(p.clock.Since(start).Seconds())

	p.logger.Info("sources loaded",
		"records", table.Len(),
		"sources", len(p.sources),
		"failed", countFailed(statuses),
		"years", table.Years(),
	)
	return table, nil
}

func countFailed(statuses []domain.SourceStatus) int {
	n := 0
	for _, s := range statuses {
		if !s.Loaded() {
			n++
		}
	}
	return n
}
