package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/logger"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/tracer"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
)

const component = "rest"

// UserAgent identifies this client on every request.
var UserAgent = "qdrant-client-go/" + transport.ClientVersion

// Client is a REST session against one Qdrant deployment. It is safe for
// concurrent use. Sub-clients are built on first access and shared for the
// lifetime of the session.
type Client struct {
	cfg     *Config
	conn    *transport.ConnectionConfig
	http    *http.Client
	handler Handler
	log     transport.Logger

	subs transport.SubClients

	compat       <-chan transport.CompatibilityResult
	cancelCompat context.CancelFunc
}

type options struct {
	log        transport.Logger
	observer   observability.Observer
	tracer     *tracer.Tracer
	httpClient *http.Client
}

// Option customizes NewClient.
type Option func(*options)

// WithLogger replaces the default zap logger.
func WithLogger(log transport.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithObserver reports every request to obs, e.g. a *metrics.Metrics.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithTracer opens a client span for every request.
func WithTracer(tr *tracer.Tracer) Option {
	return func(o *options) { o.tracer = tr }
}

// WithHTTPClient replaces the pooled HTTP client built from Config.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// NewClient resolves the connection parameters and builds the request chain.
// It fails only with a *transport.ConfigError. When CheckCompatibility is
// set the server version is probed in the background; the constructor does
// not wait for it.
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		zl, err := logger.NewLoggerClient(logger.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("[Qdrant] failed to create default logger: %w", err)
		}
		o.log = zl
	}

	conn, err := transport.Resolve(cfg.Params(), transport.RESTDefaults, o.log)
	if err != nil {
		return nil, err
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}

	c := &Client{
		cfg:  cfg,
		conn: conn,
		http: httpClient,
		log:  o.log,
	}
	c.handler = Chain(HTTPHandler(httpClient), c.middlewares(o)...)

	if cfg.CheckCompatibility {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancelCompat = cancel
		c.compat = transport.StartCompatibilityCheck(ctx, c.serverVersion, transport.ClientVersion, c.log)
	}

	c.log.Debug("[Qdrant] REST client created", nil, map[string]interface{}{
		"base_uri": conn.BaseURI,
	})
	return c, nil
}

func newHTTPClient(cfg *Config) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:   true,
			MaxConnsPerHost:     cfg.MaxConnsPerHost,
			MaxIdleConnsPerHost: cfg.MaxConnsPerHost,
			IdleConnTimeout:     cfg.KeepAliveTimeout,
		},
	}
}

// middlewares returns the request chain, outermost first.
func (c *Client) middlewares(o options) []Middleware {
	mws := []Middleware{UserAgentMiddleware(UserAgent)}
	if len(c.cfg.Headers) > 0 {
		mws = append(mws, HeadersMiddleware(c.cfg.Headers))
	}
	if c.cfg.APIKey != "" {
		mws = append(mws, APIKeyMiddleware(c.cfg.APIKey))
	}
	if o.observer != nil {
		mws = append(mws, ObserverMiddleware(o.observer))
	}
	if o.tracer != nil {
		mws = append(mws, TracingMiddleware(o.tracer))
	}
	if c.cfg.Timeout >= 0 {
		mws = append(mws, TimeoutMiddleware(c.cfg.Timeout))
	}
	return append(mws, ValidationMiddleware())
}

// Connection returns the resolved connection parameters.
func (c *Client) Connection() *transport.ConnectionConfig {
	return c.conn
}

// Compatibility returns the channel delivering the background version check
// result, or nil when the check is disabled.
func (c *Client) Compatibility() <-chan transport.CompatibilityResult {
	return c.compat
}

// Close stops a pending compatibility check and releases idle connections.
func (c *Client) Close() error {
	if c.cancelCompat != nil {
		c.cancelCompat()
	}
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) serverVersion(ctx context.Context) (string, error) {
	info, err := c.Service().VersionInfo(ctx)
	if err != nil {
		return "", err
	}
	return info.Version, nil
}

// do sends one request through the chain and decodes the body into out.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	target := c.conn.BaseURI + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[Qdrant] %s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(WithOperation(ctx, op), method, target, reader)
	if err != nil {
		return fmt.Errorf("[Qdrant] %s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.handler(req)
	if err != nil {
		return fmt.Errorf("[Qdrant] %s: %w", op, err)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("[Qdrant] %s: failed to decode response: %w: %w", op, transport.ErrProtocolMismatch, err)
	}
	return nil
}

// call performs a request whose response is the standard result envelope and
// fails with an EmptyResultError when the result is null.
func call[T any](ctx context.Context, c *Client, op, method, path string, query url.Values, body any) (*T, error) {
	var env envelope[T]
	if err := c.do(ctx, op, method, path, query, body, &env); err != nil {
		return nil, err
	}
	if env.Result == nil {
		return nil, &transport.EmptyResultError{Operation: op}
	}
	return env.Result, nil
}

// Sub-client names used with api.
const (
	collectionsAPI = "collections"
	pointsAPI      = "points"
	snapshotsAPI   = "snapshots"
	clusterAPI     = "cluster"
	serviceAPI     = "service"
)

// api returns the memoized sub-client registered under name.
func (c *Client) api(name string) any {
	return c.subs.Get(name, func() any {
		switch name {
		case collectionsAPI:
			return &CollectionsAPI{c: c}
		case pointsAPI:
			return &PointsAPI{c: c}
		case snapshotsAPI:
			return &SnapshotsAPI{c: c}
		case clusterAPI:
			return &ClusterAPI{c: c}
		case serviceAPI:
			return &ServiceAPI{c: c}
		default:
			panic("qdrant: unknown sub-client " + name)
		}
	})
}

// Collections returns the collections sub-client.
func (c *Client) Collections() *CollectionsAPI { return c.api(collectionsAPI).(*CollectionsAPI) }

// Points returns the points sub-client.
func (c *Client) Points() *PointsAPI { return c.api(pointsAPI).(*PointsAPI) }

// Snapshots returns the snapshots sub-client.
func (c *Client) Snapshots() *SnapshotsAPI { return c.api(snapshotsAPI).(*SnapshotsAPI) }

// Cluster returns the cluster sub-client.
func (c *Client) Cluster() *ClusterAPI { return c.api(clusterAPI).(*ClusterAPI) }

// Service returns the service sub-client.
func (c *Client) Service() *ServiceAPI { return c.api(serviceAPI).(*ServiceAPI) }
