package qdrant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/tracer"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

// Metadata keys attached to outgoing calls.
const (
	apiKeyHeader     = "api-key"
	clientHeader     = "x-qdrant-client"
	retryAfterHeader = "retry-after"
)

// splitMethod turns "/qdrant.Points/Search" into ("qdrant.Points", "Search").
func splitMethod(fullMethod string) (service, method string) {
	name := strings.TrimPrefix(fullMethod, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "unknown", name
}

// identificationInterceptor tags every call with the client identification.
// grpc-go owns the user-agent key, so it is set through grpc.WithUserAgent
// and mirrored here under its own key.
func identificationInterceptor(userAgent string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, clientHeader, userAgent)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// headersInterceptor adds static metadata to every call.
func headersInterceptor(headers map[string]string) grpc.UnaryClientInterceptor {
	kv := make([]string, 0, len(headers)*2)
	for k, v := range headers {
		kv = append(kv, strings.ToLower(k), v)
	}
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, kv...)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// apiKeyInterceptor injects the API key under the "api-key" metadata key.
func apiKeyInterceptor(apiKey string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, apiKeyHeader, apiKey)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

var errClientTimeout = errors.New("qdrant client timeout")

// timeoutInterceptor bounds every call by d. Only an expiry of this deadline
// is reported as a *transport.TimeoutError.
func timeoutInterceptor(d time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx, cancel := context.WithTimeoutCause(ctx, d, errClientTimeout)
		defer cancel()

		err := invoker(ctx, method, req, reply, cc, opts...)
		if err != nil && errors.Is(context.Cause(ctx), errClientTimeout) {
			return &transport.TimeoutError{Timeout: d, Err: err}
		}
		return err
	}
}

// observerInterceptor reports every call to obs.
func observerInterceptor(obs observability.Observer) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		service, name := splitMethod(method)
		done := observability.Start(obs, component, name)
		defer done()

		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)

		oc := observability.OperationContext{
			Component: component,
			Operation: name,
			Resource:  service,
			Duration:  time.Since(start),
			Error:     err,
			Metadata:  map[string]interface{}{"code": status.Code(err).String()},
		}
		if m, ok := reply.(proto.Message); ok && err == nil {
			oc.Size = int64(proto.Size(m))
		}
		obs.ObserveOperation(oc)
		return err
	}
}

// tracingInterceptor opens a client span per call and propagates it through
// the outgoing metadata.
func tracingInterceptor(tr *tracer.Tracer) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		service, name := splitMethod(method)
		ctx, span := tr.StartClientSpan(ctx, "qdrant."+name, map[string]interface{}{
			"qdrant.transport": component,
			"rpc.system":       "grpc",
			"rpc.service":      service,
			"rpc.method":       name,
		})
		defer span.End()

		for k, v := range tr.GetCarrier(ctx) {
			ctx = metadata.AppendToOutgoingContext(ctx, k, v)
		}

		err := invoker(ctx, method, req, reply, cc, opts...)
		tr.SetAttributes(span, map[string]interface{}{"rpc.grpc.status_code": int(status.Code(err))})
		if err != nil {
			tr.RecordErrorOnSpan(span, err)
		}
		return err
	}
}

// statusInterceptor turns RESOURCE_EXHAUSTED carrying a retry-after trailer
// into a *transport.ResourceExhaustedError. Other failures pass through as
// gRPC status errors.
func statusInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		var trailer metadata.MD
		opts = append(opts, grpc.Trailer(&trailer))

		err := invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			return nil
		}

		st, ok := status.FromError(err)
		if !ok || st.Code() != codes.ResourceExhausted {
			return err
		}
		values := trailer.Get(retryAfterHeader)
		if len(values) == 0 {
			return err
		}

		exhausted, parseErr := transport.NewResourceExhaustedError(st.Message(), values[0])
		if parseErr != nil {
			return parseErr
		}
		return exhausted
	}
}
