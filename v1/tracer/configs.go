package tracer

// Config controls the OpenTelemetry tracer provider.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is reported as deployment.environment.
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport ships spans through OTLP over HTTP. The exporter reads
	// OTEL_EXPORTER_OTLP_* variables unless Endpoint is set.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint overrides the OTLP collector host:port.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE"`
}

// DefaultConfig traces locally without exporting.
func DefaultConfig() Config {
	return Config{
		ServiceName: "qdrant-client",
		AppEnv:      "development",
	}
}
