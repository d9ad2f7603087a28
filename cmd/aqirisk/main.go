package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/aqi-risk-service/internal/adapter/csvsource"
	httpadapter "github.com/couchcryptid/aqi-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/aqi-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/aqi-risk-service/internal/config"
	"github.com/couchcryptid/aqi-risk-service/internal/dashboard"
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
	"github.com/couchcryptid/aqi-risk-service/internal/observability"
	"github.com/couchcryptid/aqi-risk-service/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	reader := csvsource.NewReader(cfg.FetchTimeout, logger)
	p := pipeline.New(reader, cfg.Sources, logger, metrics, clock)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, dashboard.New(nil), cfg.DefaultPercentile, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server so probes answer while sources load.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	table, err := p.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			logger.Error("no data could be loaded from any source", "sources", cfg.Sources)
		} else {
			logger.Error("source loading aborted", "error", err)
		}
		shutdown(srv, cfg, logger)
		stop()
		os.Exit(1)
	}

	if cfg.KafkaEnabled {
		pub := kafkaadapter.NewPublisher(cfg, metrics, clock, logger)
		if _, err := pub.Publish(ctx, table, cfg.DefaultPercentile); err != nil {
			logger.Error("snapshot publish failed", "error", err)
		}
		if err := pub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	} else {
		logger.Info("kafka snapshot publishing disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")
	shutdown(srv, cfg, logger)
	logger.Info("shutdown complete")
}

func shutdown(srv *httpadapter.Server, cfg *config.Config, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}
