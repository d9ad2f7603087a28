package cli

import (
	"fmt"

	"github.com/couchcryptid/aqi-risk-service/internal/adapter/kafka"
	"github.com/jonboulle/clockwork"
)

// PublishCommand sends one snapshot per county to Kafka.
type PublishCommand struct {
	Brokers []string `long:"broker" description:"Kafka broker address (repeatable); defaults to KAFKA_BROKERS"`
	Topic   string   `long:"topic" description:"Kafka topic; defaults to KAFKA_TOPIC"`

	env env
}

// Execute implements the go-flags Commander interface for PublishCommand.
func (c *PublishCommand) Execute(_ []string) error {
	s, err := c.env.open()
	if err != nil {
		return err
	}
	if len(c.Brokers) > 0 {
		s.cfg.KafkaBrokers = c.Brokers
	}
	if c.Topic != "" {
		s.cfg.KafkaTopic = c.Topic
	}

	pub := kafka.NewPublisher(s.cfg, s.metrics, clockwork.NewRealClock(), s.logger)
	defer pub.Close()

	n, err := pub.Publish(c.env.ctx, s.table, c.env.globals.Percentile)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.env.out, "published %d county snapshots to %s\n", n, s.cfg.KafkaTopic)
	return nil
}
