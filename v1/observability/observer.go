// Package observability defines the hook the client transports use to report
// every outbound call to metrics, tracing or custom sinks.
package observability

import "time"

// OperationContext describes one completed outbound call.
type OperationContext struct {
	// Component is the transport that issued the call: "rest" or "grpc".
	Component string

	// Operation is the logical operation name, e.g. "search_points".
	Operation string

	// Resource is the request target: an HTTP path or a gRPC method.
	Resource string

	// SubResource carries additional context such as the HTTP method.
	SubResource string

	// Duration is the wall time of the call including all interceptors
	// that run after the observer.
	Duration time.Duration

	// Error is the error returned to the caller, nil on success.
	Error error

	// Size is the response payload size in bytes when known.
	Size int64

	// Metadata holds optional extra attributes.
	Metadata map[string]interface{}
}

// Observer receives an OperationContext for every call. Implementations must
// be safe for concurrent use and should not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// CallTracker is implemented by observers that also count calls in flight.
// StartOperation runs before the call is issued and the returned func once it
// has completed.
type CallTracker interface {
	StartOperation(component, operation string) (done func())
}

// Start invokes obs.StartOperation when obs is a CallTracker. The returned
// func is never nil.
func Start(obs Observer, component, operation string) (done func()) {
	if t, ok := obs.(CallTracker); ok {
		return t.StartOperation(component, operation)
	}
	return func() {}
}
