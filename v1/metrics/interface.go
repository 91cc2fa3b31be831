package metrics

import (
	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector records client calls and lets applications register their
// own metrics next to them.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	observability.Observer
	observability.CallTracker

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}

var _ MetricsCollector = (*Metrics)(nil)
