package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aqi_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for source
// loading, dashboard views, and snapshot publishing.
type Metrics struct {
	SourcesLoaded  prometheus.Counter
	SourcesFailed  prometheus.Counter
	RecordsLoaded  prometheus.Counter
	LoadDuration   prometheus.Histogram
	TableReady     prometheus.Gauge
	SourceDuration *prometheus.HistogramVec // labels: outcome={success,error}

	// View metrics.
	ViewRequests *prometheus.CounterVec   // labels: view, outcome={ok,invalid,not_found,error}
	ViewDuration *prometheus.HistogramVec // labels: view

	// Snapshot publishing metrics.
	SnapshotsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all service metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.SourcesLoaded,
		m.SourcesFailed,
		m.RecordsLoaded,
		m.LoadDuration,
		m.TableReady,
		m.SourceDuration,
		m.ViewRequests,
		m.ViewDuration,
		m.SnapshotsPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SourcesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sources_loaded_total",
			Help:      "Yearly sources loaded successfully.",
		}),
		SourcesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sources_failed_total",
			Help:      "Yearly sources skipped after a fetch or parse failure.",
		}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "County-year records loaded into the table.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of loading all yearly sources.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		TableReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_ready",
			Help:      "1 once the record table is loaded, 0 before.",
		}),
		SourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Fetch and parse duration of one yearly source.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),
		ViewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_requests_total",
			Help:      "Dashboard view requests by view and outcome.",
		}, []string{"view", "outcome"}),
		ViewDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_duration_seconds",
			Help:      "Time to derive a dashboard view from the table.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"view"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_published_total",
			Help:      "County risk snapshots written to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed snapshot publish attempts.",
		}),
	}
}
