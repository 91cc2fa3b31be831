package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(status int, body string) Handler {
	return func(req *http.Request) (*Response, error) {
		return &Response{StatusCode: status, Status: http.StatusText(status), Header: http.Header{}, Body: []byte(body)}, nil
	}
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://localhost:6333/collections", nil)
	require.NoError(t, err)
	return req
}

func TestChain_Order(t *testing.T) {
	var order []string
	record := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(req *http.Request) (*Response, error) {
				order = append(order, name)
				return next(req)
			}
		}
	}

	h := Chain(func(req *http.Request) (*Response, error) {
		order = append(order, "final")
		return &Response{StatusCode: 200}, nil
	}, record("first"), record("second"), record("third"))

	_, err := h(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third", "final"}, order)
}

func TestHeaderMiddlewares(t *testing.T) {
	var got http.Header
	h := Chain(func(req *http.Request) (*Response, error) {
		got = req.Header.Clone()
		return &Response{StatusCode: 200}, nil
	},
		UserAgentMiddleware("qdrant-client-go/test"),
		HeadersMiddleware(map[string]string{"X-Tenant": "acme"}),
		APIKeyMiddleware("secret"),
	)

	_, err := h(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "qdrant-client-go/test", got.Get("User-Agent"))
	assert.Equal(t, "acme", got.Get("X-Tenant"))
	assert.Equal(t, "secret", got.Get("api-key"))
}

func TestTimeoutMiddleware_ZeroTimeoutAgainstSlowServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	h := Chain(HTTPHandler(srv.Client()), TimeoutMiddleware(0), ValidationMiddleware())

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	start := time.Now()
	resp, err := h(req)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Less(t, time.Since(start), 2*time.Second)

	assert.True(t, transport.IsTimeoutError(err))
	var timeoutErr *transport.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, time.Duration(0), timeoutErr.Timeout)
}

func TestTimeoutMiddleware_FiresOnSlowHandler(t *testing.T) {
	h := TimeoutMiddleware(20 * time.Millisecond)(func(req *http.Request) (*Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	_, err := h(newRequest(t))
	assert.True(t, transport.IsTimeoutError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTimeoutMiddleware_ReleasesTimerOnSuccess(t *testing.T) {
	var inner context.Context
	h := TimeoutMiddleware(time.Hour)(func(req *http.Request) (*Response, error) {
		inner = req.Context()
		return &Response{StatusCode: 200}, nil
	})

	resp, err := h(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.ErrorIs(t, inner.Err(), context.Canceled)
}

func TestTimeoutMiddleware_ReleasesTimerOnFailure(t *testing.T) {
	var inner context.Context
	boom := errors.New("connection reset")
	h := TimeoutMiddleware(time.Hour)(func(req *http.Request) (*Response, error) {
		inner = req.Context()
		return nil, boom
	})

	_, err := h(newRequest(t))
	assert.ErrorIs(t, err, boom)
	assert.False(t, transport.IsTimeoutError(err))
	assert.ErrorIs(t, inner.Err(), context.Canceled)
}

func TestTimeoutMiddleware_CallerCancellationIsNotTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := TimeoutMiddleware(time.Hour)(func(req *http.Request) (*Response, error) {
		return nil, req.Context().Err()
	})

	_, err := h(newRequest(t).WithContext(ctx))
	require.Error(t, err)
	assert.False(t, transport.IsTimeoutError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidationMiddleware(t *testing.T) {
	t.Run("200 and 201 pass", func(t *testing.T) {
		for _, status := range []int{http.StatusOK, http.StatusCreated} {
			resp, err := ValidationMiddleware()(okHandler(status, `{}`))(newRequest(t))
			require.NoError(t, err)
			assert.Equal(t, status, resp.StatusCode)
		}
	})

	t.Run("400 becomes unexpected response", func(t *testing.T) {
		_, err := ValidationMiddleware()(okHandler(http.StatusBadRequest, `{"msg":"x"}`))(newRequest(t))

		var unexpected *transport.UnexpectedResponseError
		require.ErrorAs(t, err, &unexpected)
		assert.Equal(t, 400, unexpected.StatusCode)
		assert.Equal(t, "Bad Request", unexpected.Reason)
		assert.Contains(t, err.Error(), "400")
		assert.Contains(t, err.Error(), `{"msg":"x"}`)
		assert.LessOrEqual(t, len([]rune(unexpected.Body)), 200)
	})

	t.Run("202 is not accepted", func(t *testing.T) {
		_, err := ValidationMiddleware()(okHandler(http.StatusAccepted, `{}`))(newRequest(t))
		assert.True(t, transport.IsUnexpectedResponseError(err))
	})

	t.Run("429 with retry-after", func(t *testing.T) {
		h := ValidationMiddleware()(func(req *http.Request) (*Response, error) {
			return &Response{
				StatusCode: http.StatusTooManyRequests,
				Header:     http.Header{"Retry-After": []string{"3"}},
				Body:       []byte(`{"status":{"error":"Too many requests"}}`),
			}, nil
		})

		_, err := h(newRequest(t))
		var exhausted *transport.ResourceExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 3*time.Second, exhausted.RetryAfter)
		assert.Equal(t, "Too many requests", exhausted.Message)
	})

	t.Run("429 with malformed retry-after", func(t *testing.T) {
		h := ValidationMiddleware()(func(req *http.Request) (*Response, error) {
			return &Response{
				StatusCode: http.StatusTooManyRequests,
				Header:     http.Header{"Retry-After": []string{"later"}},
			}, nil
		})

		_, err := h(newRequest(t))
		assert.ErrorIs(t, err, transport.ErrProtocolMismatch)
		assert.False(t, transport.IsResourceExhaustedError(err))
	})

	t.Run("429 without retry-after", func(t *testing.T) {
		_, err := ValidationMiddleware()(okHandler(http.StatusTooManyRequests, ""))(newRequest(t))
		assert.True(t, transport.IsUnexpectedResponseError(err))
	})
}

func TestObserverMiddleware(t *testing.T) {
	var seen []observability.OperationContext
	obs := observability.ObserverFunc(func(oc observability.OperationContext) {
		seen = append(seen, oc)
	})

	h := Chain(okHandler(http.StatusNotFound, `{}`), ObserverMiddleware(obs), ValidationMiddleware())

	req := newRequest(t)
	_, err := h(req.WithContext(WithOperation(req.Context(), "get_collections")))
	require.Error(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, "rest", seen[0].Component)
	assert.Equal(t, "get_collections", seen[0].Operation)
	assert.Equal(t, "/collections", seen[0].Resource)
	assert.Equal(t, http.MethodGet, seen[0].SubResource)
	assert.True(t, transport.IsUnexpectedResponseError(seen[0].Error))
}

func TestOperationFromContext(t *testing.T) {
	assert.Equal(t, "unknown", OperationFromContext(context.Background()))
	assert.Equal(t, "count_points", OperationFromContext(WithOperation(context.Background(), "count_points")))
}
