// Package qdrant provides the gRPC client for the Qdrant vector database.
//
// It wraps the generated stubs of github.com/qdrant/go-client with connection
// resolution, authentication, timeouts, observation, tracing and Fx lifecycle
// management. Requests and responses are the generated protobuf messages.
//
// # Core Features
//
//   - One lazily connecting gRPC channel per Client
//   - Stubs for Collections, Points, Snapshots and the root service, each
//     built once on first access
//   - API key sent as "api-key" metadata, TLS chosen from the URL scheme or
//     the presence of an API key
//   - Per-call timeout reported as *transport.TimeoutError
//   - RESOURCE_EXHAUSTED with a retry-after trailer reported as
//     *transport.ResourceExhaustedError
//   - Background client/server version check
//
// Every call passes through interceptors in this order:
//
//	identification -> custom metadata -> api-key -> observer -> tracing -> timeout -> status
//
// # Basic Usage
//
//	client, err := qdrant.NewClient(qdrant.FromHost("localhost"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.EnsureCollection(ctx, &pb.CreateCollection{
//	    CollectionName: "documents",
//	    VectorsConfig: pb.NewVectorsConfig(&pb.VectorParams{
//	        Size:     1536,
//	        Distance: pb.Distance_Cosine,
//	    }),
//	})
//
//	hits, err := client.Search(ctx, &pb.SearchPoints{
//	    CollectionName: "documents",
//	    Vector:         queryVector,
//	})
//	for _, hit := range hits {
//	    id, _ := qdrant.PointIDString(hit.GetId())
//	    fmt.Println(id, hit.GetScore(), qdrant.PayloadToMap(hit.GetPayload()))
//	}
//
// where pb is github.com/qdrant/go-client/qdrant.
//
// # Defaults
//
// Unset fields of read requests are filled before sending: limit 10, offset
// 0, payload on and vectors off for search and recommend; payload on for get
// and scroll; exact counting; limit 10 for query. Write requests wait for the
// change to be applied unless Wait is set. The caller's message is cloned
// first and never modified.
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    fx.Supply(logger.DefaultConfig(), qdrant.DefaultConfig()),
//	)
//	app.Run()
//
// # Configuration
//
// Qdrant can be configured via environment variables or YAML:
//
//	QDRANT_HOST=localhost
//	QDRANT_GRPC_PORT=6334
//	QDRANT_API_KEY=your-api-key
//
// # Thread Safety
//
// All exported methods on Client are safe for concurrent use by multiple
// goroutines.
package qdrant
