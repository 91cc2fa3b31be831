package logger

// Supported log levels.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls how the client logger is built.
type Config struct {
	// Level is one of debug, info, warning or error. Anything else is info.
	Level string `yaml:"level" envconfig:"QDRANT_CLIENT_LOG_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"QDRANT_CLIENT_SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to entries logged through the
	// *WithContext methods.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"QDRANT_CLIENT_LOG_TRACING"`
}

// DefaultConfig logs at info level for the "qdrant-client" service.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "qdrant-client",
	}
}
