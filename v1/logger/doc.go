// Package logger provides the structured logger used by the Qdrant clients.
//
// It wraps zap behind a small map based API so that client packages can log
// with fields without importing zap themselves:
//
//	log, err := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "search-api",
//	})
//	if err != nil {
//		return err
//	}
//	defer log.Sync()
//
//	log.Warn("[Qdrant] API key is used with an insecure connection", nil, map[string]interface{}{
//		"host": "localhost",
//	})
//
// The REST and gRPC clients accept any value satisfying transport.Logger, which
// *LoggerClient does. Tests usually wrap a zaptest/observer core with
// NewFromZap to assert on emitted entries.
//
// # Tracing
//
// With EnableTracing set, the *WithContext methods add trace_id and span_id
// from the OpenTelemetry span found in the context.
//
// # FX
//
// FXModule provides both *LoggerClient and Logger and syncs the logger on
// shutdown. A Config must be supplied to the container.
package logger
