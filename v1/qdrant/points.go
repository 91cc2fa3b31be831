package qdrant

import (
	"context"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// Write operations default Wait to DefaultWait. Read operations fill unset
// limit, offset, payload and vector selectors from the Default constants.
// The caller's request is never modified.

func updateResult(op string, resp *qdrant.PointsOperationResponse, err error) (*qdrant.UpdateResult, error) {
	if err != nil {
		return nil, wrap(op, err)
	}
	if resp.GetResult() == nil {
		return nil, &transport.EmptyResultError{Operation: op}
	}
	return resp.GetResult(), nil
}

// Upsert inserts or replaces points.
func (c *Client) Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	const op = "upsert_points"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	req.Wait = waitOrDefault(req.Wait)

	resp, err := c.Points().Upsert(ctx, req)
	return updateResult(op, resp, err)
}

// Delete removes points selected by id or filter.
func (c *Client) Delete(ctx context.Context, req *qdrant.DeletePoints) (*qdrant.UpdateResult, error) {
	const op = "delete_points"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	req.Wait = waitOrDefault(req.Wait)

	resp, err := c.Points().Delete(ctx, req)
	return updateResult(op, resp, err)
}

// SetPayload merges payload keys into the selected points.
func (c *Client) SetPayload(ctx context.Context, req *qdrant.SetPayloadPoints) (*qdrant.UpdateResult, error) {
	const op = "set_payload"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	req.Wait = waitOrDefault(req.Wait)

	resp, err := c.Points().SetPayload(ctx, req)
	return updateResult(op, resp, err)
}

// OverwritePayload replaces the whole payload of the selected points.
func (c *Client) OverwritePayload(ctx context.Context, req *qdrant.SetPayloadPoints) (*qdrant.UpdateResult, error) {
	const op = "overwrite_payload"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	req.Wait = waitOrDefault(req.Wait)

	resp, err := c.Points().OverwritePayload(ctx, req)
	return updateResult(op, resp, err)
}

// DeletePayload removes payload keys from the selected points.
func (c *Client) DeletePayload(ctx context.Context, req *qdrant.DeletePayloadPoints) (*qdrant.UpdateResult, error) {
	const op = "delete_payload"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	req.Wait = waitOrDefault(req.Wait)

	resp, err := c.Points().DeletePayload(ctx, req)
	return updateResult(op, resp, err)
}

// ClearPayload removes every payload key from the selected points.
func (c *Client) ClearPayload(ctx context.Context, req *qdrant.ClearPayloadPoints) (*qdrant.UpdateResult, error) {
	const op = "clear_payload"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	req.Wait = waitOrDefault(req.Wait)

	resp, err := c.Points().ClearPayload(ctx, req)
	return updateResult(op, resp, err)
}

// CreateFieldIndex builds a payload index on one field.
func (c *Client) CreateFieldIndex(ctx context.Context, req *qdrant.CreateFieldIndexCollection) (*qdrant.UpdateResult, error) {
	const op = "create_field_index"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	req.Wait = waitOrDefault(req.Wait)

	resp, err := c.Points().CreateFieldIndex(ctx, req)
	return updateResult(op, resp, err)
}

// DeleteFieldIndex drops the payload index of one field.
func (c *Client) DeleteFieldIndex(ctx context.Context, req *qdrant.DeleteFieldIndexCollection) (*qdrant.UpdateResult, error) {
	const op = "delete_field_index"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	req.Wait = waitOrDefault(req.Wait)

	resp, err := c.Points().DeleteFieldIndex(ctx, req)
	return updateResult(op, resp, err)
}

// UploadPoints is reserved for client-side batched parallel uploads and is
// not available in this client.
func (c *Client) UploadPoints(context.Context, *qdrant.UpsertPoints) error {
	return &transport.NotImplementedError{Method: "UploadPoints"}
}

// Get retrieves points by id. Payloads are returned unless WithPayload says
// otherwise.
func (c *Client) Get(ctx context.Context, req *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error) {
	const op = "get_points"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	applyGetDefaults(req)

	resp, err := c.Points().Get(ctx, req)
	if err != nil {
		return nil, wrap(op, err)
	}
	return resp.GetResult(), nil
}

// Search returns the points closest to a vector.
func (c *Client) Search(ctx context.Context, req *qdrant.SearchPoints) ([]*qdrant.ScoredPoint, error) {
	const op = "search_points"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	applySearchDefaults(req)

	resp, err := c.Points().Search(ctx, req)
	if err != nil {
		return nil, wrap(op, err)
	}
	return resp.GetResult(), nil
}

// SearchBatch runs several searches in one round trip. Defaults are applied
// to every inner search.
func (c *Client) SearchBatch(ctx context.Context, req *qdrant.SearchBatchPoints) ([]*qdrant.BatchResult, error) {
	const op = "search_batch"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	for _, s := range req.GetSearchPoints() {
		applySearchDefaults(s)
	}

	resp, err := c.Points().SearchBatch(ctx, req)
	if err != nil {
		return nil, wrap(op, err)
	}
	return resp.GetResult(), nil
}

// Recommend returns points similar to the positive and unlike the negative
// examples.
func (c *Client) Recommend(ctx context.Context, req *qdrant.RecommendPoints) ([]*qdrant.ScoredPoint, error) {
	const op = "recommend_points"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	applyRecommendDefaults(req)

	resp, err := c.Points().Recommend(ctx, req)
	if err != nil {
		return nil, wrap(op, err)
	}
	return resp.GetResult(), nil
}

// Scroll pages through a collection. The returned offset is nil on the last
// page.
func (c *Client) Scroll(ctx context.Context, req *qdrant.ScrollPoints) ([]*qdrant.RetrievedPoint, *qdrant.PointId, error) {
	const op = "scroll_points"
	req, err := prepare(op, req)
	if err != nil {
		return nil, nil, err
	}
	applyScrollDefaults(req)

	resp, err := c.Points().Scroll(ctx, req)
	if err != nil {
		return nil, nil, wrap(op, err)
	}
	return resp.GetResult(), resp.GetNextPageOffset(), nil
}

// Count returns the number of points matching the filter. Counting is exact
// unless Exact is set to false.
func (c *Client) Count(ctx context.Context, req *qdrant.CountPoints) (uint64, error) {
	const op = "count_points"
	req, err := prepare(op, req)
	if err != nil {
		return 0, err
	}
	applyCountDefaults(req)

	resp, err := c.Points().Count(ctx, req)
	if err != nil {
		return 0, wrap(op, err)
	}
	if resp.GetResult() == nil {
		return 0, &transport.EmptyResultError{Operation: op}
	}
	return resp.GetResult().GetCount(), nil
}

// Query runs a universal query.
func (c *Client) Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	const op = "query_points"
	req, err := prepare(op, req)
	if err != nil {
		return nil, err
	}
	applyQueryDefaults(req)

	resp, err := c.Points().Query(ctx, req)
	if err != nil {
		return nil, wrap(op, err)
	}
	return resp.GetResult(), nil
}
