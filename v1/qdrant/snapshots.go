package qdrant

import (
	"context"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// CreateSnapshot snapshots one collection.
func (c *Client) CreateSnapshot(ctx context.Context, collection string) (*qdrant.SnapshotDescription, error) {
	const op = "create_snapshot"
	resp, err := c.Snapshots().Create(ctx, &qdrant.CreateSnapshotRequest{CollectionName: collection})
	if err != nil {
		return nil, wrap(op, err)
	}
	if resp.GetSnapshotDescription() == nil {
		return nil, &transport.EmptyResultError{Operation: op}
	}
	return resp.GetSnapshotDescription(), nil
}

// ListSnapshots lists the snapshots of one collection.
func (c *Client) ListSnapshots(ctx context.Context, collection string) ([]*qdrant.SnapshotDescription, error) {
	resp, err := c.Snapshots().List(ctx, &qdrant.ListSnapshotsRequest{CollectionName: collection})
	if err != nil {
		return nil, wrap("list_snapshots", err)
	}
	return resp.GetSnapshotDescriptions(), nil
}

// DeleteSnapshot removes one collection snapshot.
func (c *Client) DeleteSnapshot(ctx context.Context, collection, snapshot string) error {
	_, err := c.Snapshots().Delete(ctx, &qdrant.DeleteSnapshotRequest{
		CollectionName: collection,
		SnapshotName:   snapshot,
	})
	if err != nil {
		return wrap("delete_snapshot", err)
	}
	return nil
}

// CreateFullSnapshot snapshots the whole storage.
func (c *Client) CreateFullSnapshot(ctx context.Context) (*qdrant.SnapshotDescription, error) {
	const op = "create_full_snapshot"
	resp, err := c.Snapshots().CreateFull(ctx, &qdrant.CreateFullSnapshotRequest{})
	if err != nil {
		return nil, wrap(op, err)
	}
	if resp.GetSnapshotDescription() == nil {
		return nil, &transport.EmptyResultError{Operation: op}
	}
	return resp.GetSnapshotDescription(), nil
}

// ListFullSnapshots lists storage-wide snapshots.
func (c *Client) ListFullSnapshots(ctx context.Context) ([]*qdrant.SnapshotDescription, error) {
	resp, err := c.Snapshots().ListFull(ctx, &qdrant.ListFullSnapshotsRequest{})
	if err != nil {
		return nil, wrap("list_full_snapshots", err)
	}
	return resp.GetSnapshotDescriptions(), nil
}

// DeleteFullSnapshot removes one storage-wide snapshot.
func (c *Client) DeleteFullSnapshot(ctx context.Context, snapshot string) error {
	_, err := c.Snapshots().DeleteFull(ctx, &qdrant.DeleteFullSnapshotRequest{SnapshotName: snapshot})
	if err != nil {
		return wrap("delete_full_snapshot", err)
	}
	return nil
}
