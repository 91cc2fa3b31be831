package metrics

// Default port for metrics server if none is specified.
const DefaultMetricsAddress = ":9090"

// DefaultNamespace prefixes every client metric.
const DefaultNamespace = "qdrant_client"

// Config defines how client metrics are collected and exposed.
type Config struct {
	// Address of the /metrics HTTP server, e.g. ":9090" or "127.0.0.1:9100".
	// An empty address disables the server; metrics are still collected in
	// Registry.
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// EnableDefaultCollectors registers Go runtime, process and build info
	// collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// Namespace prefixes all metric names.
	//
	// Example:
	//   Namespace: "qdrant_client"
	//   → "qdrant_client_requests_total"
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE"`

	// ServiceName is attached to every metric as the "service" label.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

// DefaultConfig returns a config serving on DefaultMetricsAddress with the
// default collectors enabled.
func DefaultConfig() Config {
	return Config{
		Address:                 DefaultMetricsAddress,
		EnableDefaultCollectors: true,
		Namespace:               DefaultNamespace,
		ServiceName:             "qdrant-client",
	}
}
