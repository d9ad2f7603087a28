// Package kafka publishes county risk snapshots to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/aqi-risk-service/internal/config"
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
	"github.com/couchcryptid/aqi-risk-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

// batchSize caps the messages sent per WriteMessages call.
const batchSize = 500

// Snapshot is one county's risk profile at a point in time.
type Snapshot struct {
	domain.ScoredCounty
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	YearMin          int       `json:"year_min"`
	YearMax          int       `json:"year_max"`
	Percentile       float64   `json:"percentile"`
	ChronicThreshold float64   `json:"chronic_threshold"`
	AcuteThreshold   float64   `json:"acute_threshold"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes one message per county, keyed by "State|County".
type Publisher struct {
	writer  messageWriter
	topic   string
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	newID   func() string
}

// NewPublisher creates a Kafka producer for the configured snapshot topic.
func NewPublisher(cfg *config.Config, metrics *observability.Metrics, clock clockwork.Clock, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newPublisher(w, cfg.KafkaTopic, metrics, clock, logger)
}

func newPublisher(w messageWriter, topic string, metrics *observability.Metrics, clock clockwork.Clock, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer:  w,
		topic:   topic,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
		newID:   uuid.NewString,
	}
}

// Publish sends a snapshot of every county aggregated over all loaded years,
// classified at pct (0-100). It returns the number of messages written.
func (p *Publisher) Publish(ctx context.Context, t *domain.Table, pct float64) (int, error) {
	runID := p.newID()
	snaps := Snapshots(t, pct, runID, p.clock.Now().UTC())
	if len(snaps) == 0 {
		p.logger.Warn("no county snapshots to publish", "run_id", runID)
		return 0, nil
	}

	msgs := make([]kafkago.Message, len(snaps))
	for i := range snaps {
		msg, err := serializeToMessage(snaps[i])
		if err != nil {
			p.metrics.PublishErrors.Inc()
			return 0, err
		}
		msgs[i] = msg
	}

	sent := 0
	for start := 0; start < len(msgs); start += batchSize {
		end := min(start+batchSize, len(msgs))
		if err := p.writer.WriteMessages(ctx, msgs[start:end]...); err != nil {
			p.metrics.PublishErrors.Inc()
			return sent, fmt.Errorf("publish snapshots: %w", err)
		}
		sent = end
		p.metrics.SnapshotsPublished.Add(float64(end - start))
	}

	p.logger.Info("county snapshots published", "run_id", runID, "topic", p.topic, "count", sent)
	return sent, nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Snapshots scores and classifies every county over all loaded years.
func Snapshots(t *domain.Table, pct float64, runID string, generatedAt time.Time) []Snapshot {
	aggs := t.Aggregates()
	cls := domain.ClassifyByPercentile(aggs, pct)
	scored := domain.ApplyPercentileCategories(domain.ScoreCounties(aggs), cls)
	first, last, _ := t.YearSpan()

	out := make([]Snapshot, len(scored))
	for i, s := range scored {
		out[i] = Snapshot{
			ScoredCounty:     s,
			RunID:            runID,
			GeneratedAt:      generatedAt,
			YearMin:          first,
			YearMax:          last,
			Percentile:       pct,
			ChronicThreshold: cls.Thresholds.Chronic,
			AcuteThreshold:   cls.Thresholds.Acute,
		}
	}
	return out
}

// serializeToMessage marshals a Snapshot into a Kafka message.
func serializeToMessage(s Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize county snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(s.Key().String()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_category", Value: []byte(s.Category)},
			{Key: "generated_at", Value: []byte(s.GeneratedAt.Format(time.RFC3339))},
			{Key: "run_id", Value: []byte(s.RunID)},
		},
	}, nil
}
