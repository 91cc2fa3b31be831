package transport

import "time"

// NoTimeout disables the per-call timeout. Any negative duration does the
// same; a zero timeout fails every call with a TimeoutError.
const NoTimeout time.Duration = -1

// MaxPort is the largest valid TCP port.
const MaxPort = 65535

const (
	// DefaultRESTPort is the port the Qdrant HTTP API listens on.
	DefaultRESTPort = 6333

	// DefaultGRPCPort is the port the Qdrant gRPC API listens on.
	DefaultGRPCPort = 6334
)

// Defaults carries the per-variant fallback host and port used when the caller
// does not supply them. The REST and gRPC clients historically use different
// loopback spellings and both are preserved.
type Defaults struct {
	Host string
	Port int
}

var (
	// RESTDefaults are used by the REST client.
	RESTDefaults = Defaults{Host: "localhost", Port: DefaultRESTPort}

	// GRPCDefaults are used by the gRPC client.
	GRPCDefaults = Defaults{Host: "127.0.0.1", Port: DefaultGRPCPort}
)

// Params are the user supplied connection parameters.
//
// Exactly one of URL and Host may be set. The zero value connects to the
// variant's default loopback address.
type Params struct {
	// URL is a full base URL such as "https://xyz.cloud.qdrant.io:6333/prefix".
	URL string

	// Host is a bare hostname, without scheme or port.
	Host string

	// Port overrides the default port. Zero means "use the default".
	Port int

	// OmitPort drops the port segment from the resolved URI entirely.
	// It is distinct from Port == 0, which falls back to the default port.
	OmitPort bool

	// HTTPS forces the scheme when non-nil. Ignored when URL is set.
	HTTPS *bool

	// Prefix is prepended to every request path, e.g. "custom" or "/custom".
	Prefix string

	// APIKey enables https by default and is sent with every request.
	APIKey string
}
