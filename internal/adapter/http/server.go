// Package http serves the dashboard views, CSV and XLSX exports, health
// probes and Prometheus metrics.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/aqi-risk-service/internal/dashboard"
	"github.com/couchcryptid/aqi-risk-service/internal/domain"
	"github.com/couchcryptid/aqi-risk-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TableProvider exposes the loaded record table. Table returns nil until
// loading completes.
type TableProvider interface {
	sharedobs.ReadinessChecker
	Table() *domain.Table
}

// Server exposes the dashboard API alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	data       TableProvider
	views      *dashboard.Views
	metrics    *observability.Metrics
	percentile float64
}

// NewServer creates the HTTP server. percentile is used by views and
// exports when a request does not set one.
func NewServer(addr string, data TableProvider, views *dashboard.Views, percentile float64, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:     logger,
		data:       data,
		views:      views,
		metrics:    metrics,
		percentile: percentile,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(data))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/years", s.view("years", s.years))
	mux.HandleFunc("GET /api/states", s.view("states", s.states))
	mux.HandleFunc("GET /api/states/{state}/counties", s.view("counties", s.counties))
	mux.HandleFunc("GET /api/sources", s.view("sources", s.sources))
	mux.HandleFunc("GET /api/overview", s.view("overview", s.overview))
	mux.HandleFunc("GET /api/chronic", s.view("chronic", s.chronic))
	mux.HandleFunc("GET /api/acute", s.view("acute", s.acute))
	mux.HandleFunc("GET /api/severity", s.view("severity", s.severity))
	mux.HandleFunc("GET /api/double-jeopardy", s.view("double_jeopardy", s.doubleJeopardy))
	mux.HandleFunc("GET /api/drilldown", s.view("drilldown", s.drilldown))
	mux.HandleFunc("GET /api/heatmap", s.view("heatmap", s.heatmap))

	mux.HandleFunc("GET /api/drilldown/rows", s.download("drilldown_rows", s.countyRows))
	mux.HandleFunc("GET /api/export/{name}", s.download("export", s.exportTable))
	mux.HandleFunc("GET /api/export.xlsx", s.workbook)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
