package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/logger"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/observability"
	"go.uber.org/fx"
)

// FXModule provides *Metrics, exposes it as the observability.Observer picked
// up by the REST and gRPC client modules, and runs the /metrics server for
// the lifetime of the application.
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    rest.FXModule,
//	    fx.Supply(metrics.DefaultConfig(), logger.DefaultConfig(), rest.DefaultConfig()),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics server in the background on
// start and shuts it down gracefully on stop. Nothing is started when the
// server is disabled.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log logger.Logger) {
	if m.Server == nil {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("[Qdrant] Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})

				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("[Qdrant] Error starting Prometheus metrics server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("[Qdrant] Shutting down Prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
