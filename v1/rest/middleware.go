package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/tracer"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
)

// Response is a fully read HTTP response. The body is buffered before the
// call returns, so cancelling the request context afterwards is safe.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Handler sends one request.
type Handler func(req *http.Request) (*Response, error)

// Middleware wraps a Handler. It may inspect or mutate the request, or fail
// without calling next.
type Middleware func(next Handler) Handler

// Chain composes middlewares around final. The first middleware is the
// outermost and sees the request first.
func Chain(final Handler, middlewares ...Middleware) Handler {
	h := final
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// HTTPHandler is the terminal handler sending requests with client.
func HTTPHandler(client *http.Client) Handler {
	return func(req *http.Request) (*Response, error) {
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("[Qdrant] failed to read response body: %w", err)
		}

		return &Response{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     resp.Header,
			Body:       body,
		}, nil
	}
}

// UserAgentMiddleware tags every request with the client identification.
func UserAgentMiddleware(userAgent string) Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*Response, error) {
			req.Header.Set("User-Agent", userAgent)
			return next(req)
		}
	}
}

// HeadersMiddleware sets static headers on every request.
func HeadersMiddleware(headers map[string]string) Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*Response, error) {
			for k, v := range headers {
				req.Header.Set(k, v)
			}
			return next(req)
		}
	}
}

// APIKeyMiddleware injects the API key as the "api-key" header.
func APIKeyMiddleware(apiKey string) Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*Response, error) {
			req.Header.Set("api-key", apiKey)
			return next(req)
		}
	}
}

// errClientTimeout is the cancellation cause of TimeoutMiddleware. Only a
// cancellation carrying it is reported as a TimeoutError.
var errClientTimeout = errors.New("qdrant client timeout")

// TimeoutMiddleware cancels the request when d elapses. The timer is released
// when the call returns on every path. A non-positive d cancels immediately.
func TimeoutMiddleware(d time.Duration) Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*Response, error) {
			ctx, cancel := context.WithTimeoutCause(req.Context(), d, errClientTimeout)
			defer cancel()

			resp, err := next(req.WithContext(ctx))
			if err != nil && errors.Is(context.Cause(ctx), errClientTimeout) {
				return nil, &transport.TimeoutError{Timeout: d, Err: err}
			}
			return resp, err
		}
	}
}

// ObserverMiddleware reports every call to obs.
func ObserverMiddleware(obs observability.Observer) Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*Response, error) {
			op := OperationFromContext(req.Context())
			done := observability.Start(obs, component, op)
			defer done()

			start := time.Now()
			resp, err := next(req)

			oc := observability.OperationContext{
				Component:   component,
				Operation:   op,
				Resource:    req.URL.Path,
				SubResource: req.Method,
				Duration:    time.Since(start),
				Error:       err,
			}
			if resp != nil {
				oc.Size = int64(len(resp.Body))
				oc.Metadata = map[string]interface{}{"status_code": resp.StatusCode}
			}
			obs.ObserveOperation(oc)

			return resp, err
		}
	}
}

// TracingMiddleware opens a client span per call and propagates its context
// through the request headers.
func TracingMiddleware(tr *tracer.Tracer) Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*Response, error) {
			op := OperationFromContext(req.Context())
			ctx, span := tr.StartClientSpan(req.Context(), "qdrant."+op, map[string]interface{}{
				"qdrant.transport": component,
				"http.method":      req.Method,
				"http.url":         req.URL.String(),
			})
			defer span.End()

			tr.InjectHTTPHeaders(ctx, req.Header)
			resp, err := next(req.WithContext(ctx))
			if resp != nil {
				tr.SetAttributes(span, map[string]interface{}{"http.status_code": resp.StatusCode})
			}
			if err != nil {
				tr.RecordErrorOnSpan(span, err)
			}
			return resp, err
		}
	}
}

// ValidationMiddleware accepts only 200 and 201. A 429 carrying Retry-After
// becomes a ResourceExhaustedError, any other status an
// UnexpectedResponseError.
func ValidationMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*Response, error) {
			resp, err := next(req)
			if err != nil {
				return nil, err
			}

			switch resp.StatusCode {
			case http.StatusOK, http.StatusCreated:
				return resp, nil
			case http.StatusTooManyRequests:
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					exhausted, parseErr := transport.NewResourceExhaustedError(errorMessage(resp.Body), retryAfter)
					if parseErr != nil {
						return nil, parseErr
					}
					return nil, exhausted
				}
			}

			return nil, transport.NewUnexpectedResponseError(resp.StatusCode, reasonPhrase(resp), resp.Body)
		}
	}
}

func reasonPhrase(resp *Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// errorMessage extracts status.error from a Qdrant error body, falling back
// to the raw body.
func errorMessage(body []byte) string {
	var env struct {
		Status struct {
			Error string `json:"error"`
		} `json:"status"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Status.Error != "" {
		return env.Status.Error
	}
	return strings.TrimSpace(string(body))
}

type operationKey struct{}

// WithOperation names the logical operation carried by ctx.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey{}, operation)
}

// OperationFromContext returns the operation set by WithOperation or
// "unknown".
func OperationFromContext(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return "unknown"
}
