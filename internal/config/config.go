package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultSources are the EPA annual county summaries the dashboard ships with.
var DefaultSources = []string{
	"data/annual_aqi_by_county_2021.csv",
	"data/annual_aqi_by_county_2022.csv",
	"data/annual_aqi_by_county_2023.csv",
	"data/annual_aqi_by_county_2024.csv",
	"data/annual_aqi_by_county_2025.csv",
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Ordered yearly sources: local paths or http(s) URLs.
	Sources           []string
	FetchTimeout      time.Duration
	DefaultPercentile float64

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka snapshot publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "30s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	pct, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("DEFAULT_PERCENTILE", "90"), 64)
	if err != nil || math.IsNaN(pct) || pct < 0 || pct > 100 {
		return nil, errors.New("DEFAULT_PERCENTILE must be a number between 0 and 100")
	}

	sources, err := loadSources()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Sources:           sources,
		FetchTimeout:      fetchTimeout,
		DefaultPercentile: pct,
		HTTPAddr:          sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,
		KafkaEnabled:      os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:      sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:        sharedcfg.EnvOrDefault("KAFKA_TOPIC", "county-aqi-risk"),
	}

	if len(cfg.Sources) == 0 {
		return nil, errors.New("AQI_SOURCES is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	return cfg, nil
}

// loadSources resolves the source list: AQI_SOURCES (comma-separated) wins,
// then the AQI_MANIFEST file, then DefaultSources.
func loadSources() ([]string, error) {
	if v := os.Getenv("AQI_SOURCES"); v != "" {
		return splitList(v), nil
	}
	if path := os.Getenv("AQI_MANIFEST"); path != "" {
		m, err := LoadManifest(path)
		if err != nil {
			return nil, fmt.Errorf("load AQI_MANIFEST: %w", err)
		}
		return m.Sources, nil
	}
	return append([]string(nil), DefaultSources...), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
