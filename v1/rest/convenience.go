package rest

import "context"

// Shortcuts for the most common operations. Each one delegates to the
// corresponding sub-client and applies the same defaults.

func (c *Client) Search(ctx context.Context, collection string, req SearchRequest) ([]ScoredPoint, error) {
	return c.Points().Search(ctx, collection, req)
}

func (c *Client) SearchBatch(ctx context.Context, collection string, req SearchRequestBatch) ([][]ScoredPoint, error) {
	return c.Points().SearchBatch(ctx, collection, req)
}

func (c *Client) Recommend(ctx context.Context, collection string, req RecommendRequest) ([]ScoredPoint, error) {
	return c.Points().Recommend(ctx, collection, req)
}

func (c *Client) Query(ctx context.Context, collection string, req QueryRequest) (*QueryResponse, error) {
	return c.Points().Query(ctx, collection, req)
}

func (c *Client) Upsert(ctx context.Context, collection string, req PointsList) (*UpdateResult, error) {
	return c.Points().Upsert(ctx, collection, req, nil)
}

func (c *Client) Retrieve(ctx context.Context, collection string, req PointRequest) ([]Record, error) {
	return c.Points().Retrieve(ctx, collection, req)
}

func (c *Client) Delete(ctx context.Context, collection string, req PointsSelector) (*UpdateResult, error) {
	return c.Points().Delete(ctx, collection, req, nil)
}

func (c *Client) Scroll(ctx context.Context, collection string, req ScrollRequest) (*ScrollResult, error) {
	return c.Points().Scroll(ctx, collection, req)
}

func (c *Client) Count(ctx context.Context, collection string, req CountRequest) (uint64, error) {
	return c.Points().Count(ctx, collection, req)
}

func (c *Client) SetPayload(ctx context.Context, collection string, req SetPayload) (*UpdateResult, error) {
	return c.Points().SetPayload(ctx, collection, req, nil)
}

func (c *Client) OverwritePayload(ctx context.Context, collection string, req SetPayload) (*UpdateResult, error) {
	return c.Points().OverwritePayload(ctx, collection, req, nil)
}

func (c *Client) DeletePayload(ctx context.Context, collection string, req DeletePayload) (*UpdateResult, error) {
	return c.Points().DeletePayload(ctx, collection, req, nil)
}

func (c *Client) ClearPayload(ctx context.Context, collection string, req PointsSelector) (*UpdateResult, error) {
	return c.Points().ClearPayload(ctx, collection, req, nil)
}

func (c *Client) UploadPoints(ctx context.Context, collection string, points []PointStruct) error {
	return c.Points().UploadPoints(ctx, collection, points)
}

func (c *Client) CreatePayloadIndex(ctx context.Context, collection string, req CreateFieldIndex) (*UpdateResult, error) {
	return c.Collections().CreatePayloadIndex(ctx, collection, req, nil)
}

func (c *Client) DeletePayloadIndex(ctx context.Context, collection, field string) (*UpdateResult, error) {
	return c.Collections().DeletePayloadIndex(ctx, collection, field, nil)
}

func (c *Client) GetCollections(ctx context.Context) (*CollectionsResponse, error) {
	return c.Collections().List(ctx)
}

func (c *Client) GetCollection(ctx context.Context, collection string) (*CollectionInfo, error) {
	return c.Collections().Get(ctx, collection)
}

func (c *Client) CreateCollection(ctx context.Context, collection string, req CreateCollection) (bool, error) {
	return c.Collections().Create(ctx, collection, req)
}

func (c *Client) DeleteCollection(ctx context.Context, collection string) (bool, error) {
	return c.Collections().Delete(ctx, collection)
}

func (c *Client) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return c.Collections().Exists(ctx, collection)
}

// EnsureCollection creates the collection unless it already exists.
func (c *Client) EnsureCollection(ctx context.Context, collection string, req CreateCollection) error {
	exists, err := c.Collections().Exists(ctx, collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = c.Collections().Create(ctx, collection, req)
	return err
}

func (c *Client) CreateSnapshot(ctx context.Context, collection string) (*SnapshotDescription, error) {
	return c.Snapshots().Create(ctx, collection)
}

func (c *Client) ListSnapshots(ctx context.Context, collection string) ([]SnapshotDescription, error) {
	return c.Snapshots().List(ctx, collection)
}

func (c *Client) DeleteSnapshot(ctx context.Context, collection, snapshot string) (bool, error) {
	return c.Snapshots().Delete(ctx, collection, snapshot)
}

func (c *Client) GetLocks(ctx context.Context) (*LocksOption, error) {
	return c.Service().GetLocks(ctx)
}

func (c *Client) LockStorage(ctx context.Context, write bool, reason string) (*LocksOption, error) {
	return c.Service().LockStorage(ctx, write, reason)
}

func (c *Client) VersionInfo(ctx context.Context) (*VersionInfo, error) {
	return c.Service().VersionInfo(ctx)
}
