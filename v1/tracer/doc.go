// Package tracer wires OpenTelemetry tracing into the Qdrant clients.
//
// The REST and gRPC clients accept a *Tracer through their WithTracer
// options. Every outbound call then gets a client span named after the
// operation ("qdrant.search_points"), and the W3C trace context is forwarded
// as HTTP headers or gRPC metadata:
//
//	tr, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "search-api",
//		AppEnv:       "production",
//		EnableExport: true,
//	})
//	if err != nil {
//		return err
//	}
//	defer tr.Shutdown(context.Background())
//
//	client, err := rest.NewClient(cfg, rest.WithTracer(tr))
//
// NewClient installs the provider globally. NewWithProvider does not and is
// meant for tests and for applications that manage their own provider.
package tracer
