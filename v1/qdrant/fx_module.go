package qdrant

import (
	"context"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/logger"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/tracer"
	"go.uber.org/fx"
)

// FXModule provides a *Client built from the *Config in the container and
// closes its channel on shutdown.
var FXModule = fx.Module("qdrant",
	fx.Provide(NewQdrantClient),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams groups the dependencies of NewQdrantClient. Everything except
// Config is optional.
type QdrantParams struct {
	fx.In

	Config   *Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
}

// NewQdrantClient is the fx constructor for *Client.
func NewQdrantClient(p QdrantParams) (*Client, error) {
	var opts []Option
	if p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger))
	}
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	if p.Tracer != nil {
		opts = append(opts, WithTracer(p.Tracer))
	}
	return NewClient(p.Config, opts...)
}

// RegisterQdrantLifecycle closes the client when the application stops.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.log.Info("[Qdrant] closing gRPC client", nil, map[string]interface{}{
				"address": client.conn.Address(),
			})
			return client.Close()
		},
	})
}
