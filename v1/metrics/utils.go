package metrics

import (
	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess            = "success"
	OutcomeTimeout            = "timeout"
	OutcomeResourceExhausted  = "resource_exhausted"
	OutcomeUnexpectedResponse = "unexpected_response"
	OutcomeEmptyResult        = "empty_result"
	OutcomeError              = "error"
)

// ObserveOperation records one client call. It makes *Metrics usable as an
// observability.Observer for the REST and gRPC clients.
func (m *Metrics) ObserveOperation(oc observability.OperationContext) {
	m.requestsTotal.WithLabelValues(oc.Component, oc.Operation, Outcome(oc.Error)).Inc()
	m.requestDuration.WithLabelValues(oc.Component, oc.Operation).Observe(oc.Duration.Seconds())
	if oc.Error == nil && oc.Size > 0 {
		m.responseSize.WithLabelValues(oc.Component, oc.Operation).Observe(float64(oc.Size))
	}
}

// StartOperation counts a call as in flight until the returned func runs.
// It makes *Metrics an observability.CallTracker.
func (m *Metrics) StartOperation(component, operation string) func() {
	g := m.inFlight.WithLabelValues(component, operation)
	g.Inc()
	return g.Dec
}

// Outcome maps a call error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case transport.IsTimeoutError(err):
		return OutcomeTimeout
	case transport.IsResourceExhaustedError(err):
		return OutcomeResourceExhausted
	case transport.IsUnexpectedResponseError(err):
		return OutcomeUnexpectedResponse
	case transport.IsEmptyResultError(err):
		return OutcomeEmptyResult
	default:
		return OutcomeError
	}
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := m.createCounterVec(name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := m.createHistogramVec(name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
	m.registerer.MustRegister(gauge)
	return gauge
}

func (m *Metrics) createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func (m *Metrics) createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
