// Package transport holds the transport-independent core shared by the REST
// client (package rest) and the gRPC client (package qdrant).
//
// # Connection resolution
//
// Resolve turns user supplied Params into an immutable ConnectionConfig. The
// rules are applied in a fixed order:
//
//   - url and host are mutually exclusive
//   - host must not carry a scheme or a trailing ":port"
//   - url must start with http:// or https://, and its path and an explicit
//     prefix cannot both be set
//   - without url the host and port fall back to the variant Defaults
//     (localhost:6333 for REST, 127.0.0.1:6334 for gRPC)
//   - the scheme defaults to https when an API key is given, http otherwise,
//     unless HTTPS is set explicitly or url carries one
//   - an API key over http only produces a warning
//   - a prefix always starts with "/"
//
// Example:
//
//	conn, err := transport.Resolve(transport.Params{
//	    Host:   "hidden_port_addr.com",
//	    Prefix: "custom",
//	}, transport.RESTDefaults, log)
//	// conn.BaseURI == "http://hidden_port_addr.com:6333/custom"
//
// Setting OmitPort removes the port segment entirely, which differs from
// leaving Port at zero (the default port is then used).
//
// # Errors
//
// All client errors unwrap to one of the sentinels ErrConfig, ErrTimeout,
// ErrUnexpectedResponse, ErrResourceExhausted, ErrNotImplemented or
// ErrEmptyResult:
//
//	if transport.IsResourceExhaustedError(err) {
//	    var re *transport.ResourceExhaustedError
//	    errors.As(err, &re)
//	    time.Sleep(re.RetryAfter)
//	}
//
// The clients never retry on their own.
//
// # Version compatibility
//
// StartCompatibilityCheck probes the server once in the background after a
// client is constructed. Results are only logged: an unreachable server or an
// unparseable version is reported as Unverified, never as a failure.
//
// # Sub-clients
//
// SubClients memoizes per-subsystem handles. The first access builds the
// handle; later accesses, including concurrent ones, share it.
package transport
