package rest

import (
	"context"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/logger"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/tracer"
	"go.uber.org/fx"
)

// FXModule provides a *Client built from the *Config in the container and
// closes it on shutdown.
//
//	app := fx.New(
//	    logger.FXModule,
//	    rest.FXModule,
//	    fx.Supply(logger.DefaultConfig(), rest.DefaultConfig()),
//	)
var FXModule = fx.Module("qdrant-rest",
	fx.Provide(NewRESTClient),
	fx.Invoke(RegisterRESTLifecycle),
)

// RESTParams groups the dependencies of NewRESTClient. Observer and Tracer
// are optional.
type RESTParams struct {
	fx.In

	Config   *Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
}

// NewRESTClient is the fx constructor for *Client.
func NewRESTClient(p RESTParams) (*Client, error) {
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

// RegisterRESTLifecycle closes the client when the application stops.
func RegisterRESTLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.log.Info("[Qdrant] closing REST client", nil, map[string]interface{}{
				"base_uri": client.conn.BaseURI,
			})
			return client.Close()
		},
	})
}
