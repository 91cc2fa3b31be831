package qdrant

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/logger"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/tracer"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding/gzip"
	"google.golang.org/grpc/keepalive"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT gRPC CLIENT
// ──────────────────────────────────────────────────────────────
//
// This file owns the gRPC connection and the generated service stubs.
//
// Responsibilities:
//   • Resolve connection parameters and dial the server lazily.
//   • Install the interceptor chain (identification, auth, timeout,
//     observation, tracing, status translation).
//   • Memoize one stub per service for the lifetime of the client.
//   • Check client/server version compatibility in the background.
//

const component = "grpc"

// UserAgent identifies this client on every call.
var UserAgent = "qdrant-client-go/" + transport.ClientVersion

// Client is a gRPC session against one Qdrant deployment. It is safe for
// concurrent use.
type Client struct {
	cfg  *Config
	conn *transport.ConnectionConfig
	cc   *grpc.ClientConn
	log  transport.Logger

	subs transport.SubClients

	compat       <-chan transport.CompatibilityResult
	cancelCompat context.CancelFunc
}

type options struct {
	log         transport.Logger
	observer    observability.Observer
	tracer      *tracer.Tracer
	dialOptions []grpc.DialOption
}

// Option customizes NewClient.
type Option func(*options)

// WithLogger replaces the default zap logger.
func WithLogger(log transport.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithObserver reports every call to obs.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithTracer opens a client span for every call.
func WithTracer(tr *tracer.Tracer) Option {
	return func(o *options) { o.tracer = tr }
}

// WithDialOptions appends raw grpc dial options, e.g. a custom dialer.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) { o.dialOptions = append(o.dialOptions, opts...) }
}

// NewClient ──────────────────────────────────────────────────────────────
// NewClient
// ──────────────────────────────────────────────────────────────
//
// NewClient resolves the connection parameters and creates the gRPC channel.
// No network traffic happens here: the channel connects on first use. When
// CheckCompatibility is set, the server version is probed in the background.
//
// Example:
//
//	client, err := qdrant.NewClient(qdrant.FromHost("localhost"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
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

	conn, err := transport.Resolve(cfg.Params(), transport.GRPCDefaults, o.log)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:  cfg,
		conn: conn,
		log:  o.log,
	}

	dialOpts := append(c.dialOptions(o), o.dialOptions...)
	cc, err := grpc.NewClient(conn.Address(), dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to create gRPC channel to %s: %w", conn.Address(), err)
	}
	c.cc = cc

	if cfg.CheckCompatibility {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancelCompat = cancel
		c.compat = transport.StartCompatibilityCheck(ctx, c.serverVersion, transport.ClientVersion, c.log)
	}

	c.log.Debug("[Qdrant] gRPC client created", nil, map[string]interface{}{
		"address": conn.Address(),
		"tls":     conn.Secure(),
	})
	return c, nil
}

func (c *Client) dialOptions(o options) []grpc.DialOption {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(c.credentials()),
		grpc.WithUserAgent(UserAgent),
		grpc.WithChainUnaryInterceptor(c.interceptors(o)...),
	}

	if c.cfg.KeepAlive {
		opts = append(opts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                c.cfg.KeepAliveTime,
			Timeout:             c.cfg.KeepAliveTimeout,
			PermitWithoutStream: true,
		}))
	}
	if c.cfg.ConnectTimeout > 0 {
		opts = append(opts, grpc.WithConnectParams(grpc.ConnectParams{
			Backoff:           backoff.DefaultConfig,
			MinConnectTimeout: c.cfg.ConnectTimeout,
		}))
	}
	if c.cfg.Compression {
		opts = append(opts, grpc.WithDefaultCallOptions(grpc.UseCompressor(gzip.Name)))
	}
	return opts
}

func (c *Client) credentials() credentials.TransportCredentials {
	if !c.conn.Secure() {
		return insecure.NewCredentials()
	}
	tlsCfg := c.cfg.TLSConfig
	if tlsCfg == nil {
		tlsCfg = &tls.Config{MinVersion: tls.VersionTLS13}
	}
	return credentials.NewTLS(tlsCfg)
}

// interceptors returns the call chain, outermost first.
func (c *Client) interceptors(o options) []grpc.UnaryClientInterceptor {
	chain := []grpc.UnaryClientInterceptor{identificationInterceptor(UserAgent)}
	if len(c.cfg.Headers) > 0 {
		chain = append(chain, headersInterceptor(c.cfg.Headers))
	}
	if c.cfg.APIKey != "" {
		chain = append(chain, apiKeyInterceptor(c.cfg.APIKey))
	}
	if o.observer != nil {
		chain = append(chain, observerInterceptor(o.observer))
	}
	if o.tracer != nil {
		chain = append(chain, tracingInterceptor(o.tracer))
	}
	if c.cfg.Timeout >= 0 {
		chain = append(chain, timeoutInterceptor(c.cfg.Timeout))
	}
	return append(chain, statusInterceptor())
}

// Connection returns the resolved connection parameters.
func (c *Client) Connection() *transport.ConnectionConfig {
	return c.conn
}

// Conn returns the underlying gRPC channel.
func (c *Client) Conn() *grpc.ClientConn {
	return c.cc
}

// Compatibility returns the channel delivering the background version check
// result, or nil when the check is disabled.
func (c *Client) Compatibility() <-chan transport.CompatibilityResult {
	return c.compat
}

// Close ──────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────
//
// Close stops a pending compatibility check and tears down the channel.
// Calls issued afterwards fail with codes.Canceled.
func (c *Client) Close() error {
	if c.cancelCompat != nil {
		c.cancelCompat()
	}
	if err := c.cc.Close(); err != nil {
		return fmt.Errorf("[Qdrant] failed to close gRPC channel: %w", err)
	}
	return nil
}

func (c *Client) serverVersion(ctx context.Context) (string, error) {
	reply, err := c.HealthCheck(ctx)
	if err != nil {
		return "", err
	}
	return reply.GetVersion(), nil
}

// Stub names used with the memoization cache.
const (
	collectionsStub = "collections"
	pointsStub      = "points"
	snapshotsStub   = "snapshots"
	serviceStub     = "service"
)

// Collections returns the generated collections stub.
func (c *Client) Collections() qdrant.CollectionsClient {
	return transport.Lazy(&c.subs, collectionsStub, func() qdrant.CollectionsClient {
		return qdrant.NewCollectionsClient(c.cc)
	})
}

// Points returns the generated points stub.
func (c *Client) Points() qdrant.PointsClient {
	return transport.Lazy(&c.subs, pointsStub, func() qdrant.PointsClient {
		return qdrant.NewPointsClient(c.cc)
	})
}

// Snapshots returns the generated snapshots stub.
func (c *Client) Snapshots() qdrant.SnapshotsClient {
	return transport.Lazy(&c.subs, snapshotsStub, func() qdrant.SnapshotsClient {
		return qdrant.NewSnapshotsClient(c.cc)
	})
}

// Service returns the generated root service stub.
func (c *Client) Service() qdrant.QdrantClient {
	return transport.Lazy(&c.subs, serviceStub, func() qdrant.QdrantClient {
		return qdrant.NewQdrantClient(c.cc)
	})
}
