package qdrant

import (
	"context"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// ListCollections returns the names of all collections.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	resp, err := c.Collections().List(ctx, &qdrant.ListCollectionsRequest{})
	if err != nil {
		return nil, wrap("list_collections", err)
	}

	names := make([]string, 0, len(resp.GetCollections()))
	for _, col := range resp.GetCollections() {
		names = append(names, col.GetName())
	}
	return names, nil
}

// GetCollectionInfo returns the detailed description of one collection.
func (c *Client) GetCollectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error) {
	const op = "get_collection"
	resp, err := c.Collections().Get(ctx, &qdrant.GetCollectionInfoRequest{CollectionName: name})
	if err != nil {
		return nil, wrap(op, err)
	}
	if resp.GetResult() == nil {
		return nil, &transport.EmptyResultError{Operation: op}
	}
	return resp.GetResult(), nil
}

// CreateCollection creates a collection and reports whether the server
// acknowledged it.
func (c *Client) CreateCollection(ctx context.Context, req *qdrant.CreateCollection) (bool, error) {
	const op = "create_collection"
	req, err := prepare(op, req)
	if err != nil {
		return false, err
	}
	resp, err := c.Collections().Create(ctx, req)
	if err != nil {
		return false, wrap(op, err)
	}
	return resp.GetResult(), nil
}

// UpdateCollection changes collection parameters.
func (c *Client) UpdateCollection(ctx context.Context, req *qdrant.UpdateCollection) (bool, error) {
	const op = "update_collection"
	req, err := prepare(op, req)
	if err != nil {
		return false, err
	}
	resp, err := c.Collections().Update(ctx, req)
	if err != nil {
		return false, wrap(op, err)
	}
	return resp.GetResult(), nil
}

// DeleteCollection drops a collection and all of its data.
func (c *Client) DeleteCollection(ctx context.Context, name string) (bool, error) {
	resp, err := c.Collections().Delete(ctx, &qdrant.DeleteCollection{CollectionName: name})
	if err != nil {
		return false, wrap("delete_collection", err)
	}
	return resp.GetResult(), nil
}

// CollectionExists reports whether a collection with the given name exists.
func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	const op = "collection_exists"
	resp, err := c.Collections().CollectionExists(ctx, &qdrant.CollectionExistsRequest{CollectionName: name})
	if err != nil {
		return false, wrap(op, err)
	}
	if resp.GetResult() == nil {
		return false, &transport.EmptyResultError{Operation: op}
	}
	return resp.GetResult().GetExists(), nil
}

// EnsureCollection ──────────────────────────────────────────────────────────────
// EnsureCollection
// ──────────────────────────────────────────────────────────────
//
// EnsureCollection creates the collection described by req unless one with
// the same name already exists. Existing collections are never modified.
func (c *Client) EnsureCollection(ctx context.Context, req *qdrant.CreateCollection) error {
	const op = "ensure_collection"
	if !req.ProtoReflect().IsValid() {
		_, err := prepare(op, req)
		return err
	}

	exists, err := c.CollectionExists(ctx, req.GetCollectionName())
	if err != nil {
		return err
	}
	if exists {
		c.log.Debug("[Qdrant] collection already exists", nil, map[string]interface{}{
			"collection": req.GetCollectionName(),
		})
		return nil
	}

	if _, err := c.CreateCollection(ctx, req); err != nil {
		return err
	}
	c.log.Info("[Qdrant] collection created", nil, map[string]interface{}{
		"collection": req.GetCollectionName(),
	})
	return nil
}

// UpdateAliases applies alias actions atomically.
func (c *Client) UpdateAliases(ctx context.Context, actions ...*qdrant.AliasOperations) (bool, error) {
	resp, err := c.Collections().UpdateAliases(ctx, &qdrant.ChangeAliases{Actions: actions})
	if err != nil {
		return false, wrap("update_aliases", err)
	}
	return resp.GetResult(), nil
}

// ListCollectionAliases returns the aliases of one collection.
func (c *Client) ListCollectionAliases(ctx context.Context, name string) ([]*qdrant.AliasDescription, error) {
	resp, err := c.Collections().ListCollectionAliases(ctx, &qdrant.ListCollectionAliasesRequest{CollectionName: name})
	if err != nil {
		return nil, wrap("list_collection_aliases", err)
	}
	return resp.GetAliases(), nil
}

// ListAliases returns every alias on the server.
func (c *Client) ListAliases(ctx context.Context) ([]*qdrant.AliasDescription, error) {
	resp, err := c.Collections().ListAliases(ctx, &qdrant.ListAliasesRequest{})
	if err != nil {
		return nil, wrap("list_aliases", err)
	}
	return resp.GetAliases(), nil
}

// CollectionClusterInfo returns shard placement for one collection.
func (c *Client) CollectionClusterInfo(ctx context.Context, name string) (*qdrant.CollectionClusterInfoResponse, error) {
	resp, err := c.Collections().CollectionClusterInfo(ctx, &qdrant.CollectionClusterInfoRequest{CollectionName: name})
	if err != nil {
		return nil, wrap("collection_cluster_info", err)
	}
	return resp, nil
}
