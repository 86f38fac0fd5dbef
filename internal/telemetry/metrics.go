package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the collection of Prometheus metrics published during long
// suite runs.
type Metrics struct {
	TrialsTotal    prometheus.Counter
	SamplesTotal   prometheus.Counter
	TuningDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates and registers the metrics on a private registry, so
// repeated construction in tests never collides.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.TrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "benchtune_trials_total",
		Help: "Total number of completed trials",
	})
	m.SamplesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "benchtune_samples_total",
		Help: "Total number of recorded samples",
	})
	m.TuningDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "benchtune_tuning_duration_seconds",
		Help:    "Wall-clock time spent tuning one benchmark",
		Buckets: prometheus.DefBuckets,
	})

	m.registry.MustRegister(m.TrialsTotal, m.SamplesTotal, m.TuningDuration)
	return m
}

// Handler returns the HTTP handler exposing this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer starts a HTTP server exposing Prometheus metrics.
func StartMetricsServer(addr string, m *Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(addr, mux)
}
