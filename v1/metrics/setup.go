package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry with the client call metrics and
// the HTTP server exposing them.
type Metrics struct {
	// Server serves the /metrics endpoint. Nil when Config.Address is empty.
	Server *http.Server

	// Registry is the isolated registry all metrics are registered with.
	Registry *prometheus.Registry

	registerer prometheus.Registerer
	namespace  string

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
	inFlight        *prometheus.GaugeVec
}

// NewMetrics builds the registry and the call metrics:
//
//	<namespace>_requests_total{transport,operation,outcome}
//	<namespace>_request_duration_seconds{transport,operation}
//	<namespace>_response_size_bytes{transport,operation}
//	<namespace>_requests_in_flight{transport,operation}
//
// Every metric carries a constant service label.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	client, err := rest.NewClient(cfg, rest.WithObserver(m))
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this registry include service="<cfg.ServiceName>".
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrapped,
		namespace:  cfg.Namespace,
	}

	m.requestsTotal = m.CreateCounter("requests_total", "Total number of Qdrant calls by outcome", []string{"transport", "operation", "outcome"})
	m.requestDuration = m.CreateHistogram("request_duration_seconds", "Duration of Qdrant calls in seconds", []string{"transport", "operation"}, prometheus.DefBuckets)
	m.responseSize = m.CreateHistogram("response_size_bytes", "Size of Qdrant responses in bytes", []string{"transport", "operation"}, prometheus.ExponentialBuckets(64, 4, 10))
	m.inFlight = m.CreateGauge("requests_in_flight", "Number of Qdrant calls currently in flight", []string{"transport", "operation"})

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	if cfg.Address != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: mux,
		}
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
