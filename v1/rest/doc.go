// Package rest provides the REST client for Qdrant.
//
// A Client owns the resolved connection, the API key, the timeout and a
// request chain applied to every call in this order:
//
//	user agent -> custom headers -> api-key -> observer -> tracing -> timeout -> validation
//
// The validation step accepts only 200 and 201. Rate limited responses (429
// with Retry-After) become a *transport.ResourceExhaustedError and anything
// else a *transport.UnexpectedResponseError with a truncated body. A call
// cancelled by the configured timeout fails with a *transport.TimeoutError.
// Nothing is retried.
//
// # Usage
//
//	client, err := rest.NewClient(rest.FromHost("localhost"))
//	if err != nil {
//		return err // *transport.ConfigError
//	}
//	defer client.Close()
//
//	hits, err := client.Points().Search(ctx, "docs", rest.SearchRequest{
//		Vector: []float32{0.1, 0.2, 0.3},
//	})
//
// Operations are grouped into sub-clients: Collections, Points, Snapshots,
// Cluster and Service. Each sub-client is built on first access and shared
// afterwards. The most common operations are also available directly on
// Client.
//
// # Defaults
//
// Unset request fields are filled before sending:
//
//	limit         10     search, recommend, query
//	offset        0      search, recommend
//	with_payload  true   search, recommend, retrieve, scroll
//	with_vector   false  search, recommend, scroll
//	exact         true   count
//	wait          true   upsert, delete, payload writes, index writes
//
// The caller's request value is never modified.
//
// # Configuration
//
// Config can be built in code, with the FromURL / FromHost builders, or read
// from YAML with LoadConfig. A negative Timeout (transport.NoTimeout) disables
// the timeout step; a zero Timeout fails every call with a TimeoutError.
package rest
