// Package metrics exports Prometheus metrics for Qdrant client calls.
//
// *Metrics implements observability.Observer. Pass it to a client with
// rest.WithObserver or qdrant.WithObserver, or include FXModule next to the
// client modules, and every call is counted and timed:
//
//	qdrant_client_requests_total{service,transport,operation,outcome}
//	qdrant_client_request_duration_seconds{service,transport,operation}
//	qdrant_client_response_size_bytes{service,transport,operation}
//	qdrant_client_requests_in_flight{service,transport,operation}
//
// transport is "rest" or "grpc". outcome is one of success, timeout,
// resource_exhausted, unexpected_response, empty_result or error.
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	go m.Server.ListenAndServe()
//
//	client, err := rest.NewClient(rest.FromHost("localhost"), rest.WithObserver(m))
//
// # Custom Metrics
//
// Applications can register additional metrics in the same registry:
//
//	ingested := m.CreateCounter("points_ingested_total", "Points written", []string{"collection"})
//	ingested.WithLabelValues("docs").Add(float64(len(points)))
//
// # Configuration
//
//	METRICS_ADDRESS=:9090
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//	METRICS_NAMESPACE=qdrant_client
//	METRICS_SERVICE_NAME=search-store
//
// An empty address disables the HTTP server.
package metrics
