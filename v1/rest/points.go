package rest

import (
	"context"
	"net/http"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
)

// PointsAPI reads, writes and searches points.
//
// Every method fills unset request fields from the default table before the
// request is sent: limit 10 and offset 0 for search and recommend, limit 10
// for query, with_payload true for search, recommend, retrieve and scroll,
// with_vector false for search, recommend and scroll, exact true for count
// and wait true for all writes.
type PointsAPI struct {
	c *Client
}

func (a *PointsAPI) write(ctx context.Context, op, method, collection, suffix string, wait *bool, body any) (*UpdateResult, error) {
	path, err := collectionPath(collection, suffix)
	if err != nil {
		return nil, err
	}
	query, err := newQuery().add("wait", waitOrDefault(wait)).encode()
	if err != nil {
		return nil, err
	}
	return call[UpdateResult](ctx, a.c, op, method, path, query, body)
}

// Upsert inserts or replaces points.
func (a *PointsAPI) Upsert(ctx context.Context, collection string, req PointsList, wait *bool) (*UpdateResult, error) {
	return a.write(ctx, "upsert_points", http.MethodPut, collection, "/points", wait, req)
}

// Delete removes the selected points.
func (a *PointsAPI) Delete(ctx context.Context, collection string, req PointsSelector, wait *bool) (*UpdateResult, error) {
	return a.write(ctx, "delete_points", http.MethodPost, collection, "/points/delete", wait, req)
}

// SetPayload merges payload keys into the selected points.
func (a *PointsAPI) SetPayload(ctx context.Context, collection string, req SetPayload, wait *bool) (*UpdateResult, error) {
	return a.write(ctx, "set_payload", http.MethodPost, collection, "/points/payload", wait, req)
}

// OverwritePayload replaces the whole payload of the selected points.
func (a *PointsAPI) OverwritePayload(ctx context.Context, collection string, req SetPayload, wait *bool) (*UpdateResult, error) {
	return a.write(ctx, "overwrite_payload", http.MethodPut, collection, "/points/payload", wait, req)
}

// DeletePayload removes payload keys from the selected points.
func (a *PointsAPI) DeletePayload(ctx context.Context, collection string, req DeletePayload, wait *bool) (*UpdateResult, error) {
	return a.write(ctx, "delete_payload", http.MethodPost, collection, "/points/payload/delete", wait, req)
}

// ClearPayload removes all payload of the selected points.
func (a *PointsAPI) ClearPayload(ctx context.Context, collection string, req PointsSelector, wait *bool) (*UpdateResult, error) {
	return a.write(ctx, "clear_payload", http.MethodPost, collection, "/points/payload/clear", wait, req)
}

// Retrieve returns points by id.
func (a *PointsAPI) Retrieve(ctx context.Context, collection string, req PointRequest) ([]Record, error) {
	path, err := collectionPath(collection, "/points")
	if err != nil {
		return nil, err
	}
	res, err := call[[]Record](ctx, a.c, "get_points", http.MethodPost, path, nil, req.withDefaults())
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// Get returns a single point.
func (a *PointsAPI) Get(ctx context.Context, collection string, id PointID) (*Record, error) {
	path, err := collectionPath(collection, "/points/")
	if err != nil {
		return nil, err
	}
	idParam, err := pathParam("id", id.String())
	if err != nil {
		return nil, err
	}
	return call[Record](ctx, a.c, "get_point", http.MethodGet, path+idParam, nil, nil)
}

// Scroll pages through points ordered by id.
func (a *PointsAPI) Scroll(ctx context.Context, collection string, req ScrollRequest) (*ScrollResult, error) {
	path, err := collectionPath(collection, "/points/scroll")
	if err != nil {
		return nil, err
	}
	return call[ScrollResult](ctx, a.c, "scroll_points", http.MethodPost, path, nil, req.withDefaults())
}

// Search returns the closest points to a vector.
func (a *PointsAPI) Search(ctx context.Context, collection string, req SearchRequest) ([]ScoredPoint, error) {
	path, err := collectionPath(collection, "/points/search")
	if err != nil {
		return nil, err
	}
	res, err := call[[]ScoredPoint](ctx, a.c, "search_points", http.MethodPost, path, nil, req.withDefaults())
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// SearchBatch runs several searches in one request.
func (a *PointsAPI) SearchBatch(ctx context.Context, collection string, req SearchRequestBatch) ([][]ScoredPoint, error) {
	path, err := collectionPath(collection, "/points/search/batch")
	if err != nil {
		return nil, err
	}
	res, err := call[[][]ScoredPoint](ctx, a.c, "search_batch_points", http.MethodPost, path, nil, req.withDefaults())
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// Recommend returns points similar to the positive and unlike the negative
// examples.
func (a *PointsAPI) Recommend(ctx context.Context, collection string, req RecommendRequest) ([]ScoredPoint, error) {
	path, err := collectionPath(collection, "/points/recommend")
	if err != nil {
		return nil, err
	}
	res, err := call[[]ScoredPoint](ctx, a.c, "recommend_points", http.MethodPost, path, nil, req.withDefaults())
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// Count counts points matching the filter.
func (a *PointsAPI) Count(ctx context.Context, collection string, req CountRequest) (uint64, error) {
	path, err := collectionPath(collection, "/points/count")
	if err != nil {
		return 0, err
	}
	res, err := call[CountResult](ctx, a.c, "count_points", http.MethodPost, path, nil, req.withDefaults())
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}

// Query runs a universal query.
func (a *PointsAPI) Query(ctx context.Context, collection string, req QueryRequest) (*QueryResponse, error) {
	path, err := collectionPath(collection, "/points/query")
	if err != nil {
		return nil, err
	}
	return call[QueryResponse](ctx, a.c, "query_points", http.MethodPost, path, nil, req.withDefaults())
}

// UploadPoints would split points into parallel batches. Batching is left to
// callers; use Upsert per batch.
func (a *PointsAPI) UploadPoints(ctx context.Context, collection string, points []PointStruct) error {
	return &transport.NotImplementedError{Method: "UploadPoints"}
}
