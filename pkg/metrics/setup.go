package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a dedicated Prometheus registry and the instruments
// recorded by the HTTP middleware.
//
// A private registry (rather than prometheus.DefaultRegisterer) keeps
// the metric set explicit and lets tests construct isolated instances
// without duplicate-registration panics.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewMetrics builds the registry, applies the service label, and
// registers all instruments.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m := &Metrics{
		Registry: registry,
		httpRequestsTotal: createCounterVec(
			cfg.Namespace,
			"http_requests_total",
			"Total number of HTTP requests",
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: createHistogramVec(
			cfg.Namespace,
			"http_request_duration_seconds",
			"HTTP request duration in seconds",
			[]string{"method", "path", "status"},
			[]float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		),
	}

	wrapped.MustRegister(m.httpRequestsTotal, m.httpRequestDuration)

	return m
}

// Handler returns the HTTP handler that serves the registry in the
// Prometheus exposition format, suitable for mounting at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
