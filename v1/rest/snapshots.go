package rest

import (
	"context"
	"net/http"
)

// SnapshotsAPI creates, lists, deletes and recovers snapshots.
type SnapshotsAPI struct {
	c *Client
}

func snapshotPath(collection, snapshot string) (string, error) {
	base, err := collectionPath(collection, "/snapshots/")
	if err != nil {
		return "", err
	}
	name, err := pathParam("snapshot_name", snapshot)
	if err != nil {
		return "", err
	}
	return base + name, nil
}

// Create takes a snapshot of a collection.
func (a *SnapshotsAPI) Create(ctx context.Context, collection string) (*SnapshotDescription, error) {
	path, err := collectionPath(collection, "/snapshots")
	if err != nil {
		return nil, err
	}
	return call[SnapshotDescription](ctx, a.c, "create_snapshot", http.MethodPost, path, nil, nil)
}

// List returns the snapshots of a collection.
func (a *SnapshotsAPI) List(ctx context.Context, collection string) ([]SnapshotDescription, error) {
	path, err := collectionPath(collection, "/snapshots")
	if err != nil {
		return nil, err
	}
	res, err := call[[]SnapshotDescription](ctx, a.c, "list_snapshots", http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// Delete removes a collection snapshot.
func (a *SnapshotsAPI) Delete(ctx context.Context, collection, snapshot string) (bool, error) {
	path, err := snapshotPath(collection, snapshot)
	if err != nil {
		return false, err
	}
	ok, err := call[bool](ctx, a.c, "delete_snapshot", http.MethodDelete, path, nil, nil)
	if err != nil {
		return false, err
	}
	return *ok, nil
}

// Recover restores a collection from a snapshot location (URL or file URI).
// wait defaults to true.
func (a *SnapshotsAPI) Recover(ctx context.Context, collection string, req SnapshotRecover, wait *bool) (bool, error) {
	path, err := collectionPath(collection, "/snapshots/recover")
	if err != nil {
		return false, err
	}
	query, err := newQuery().add("wait", waitOrDefault(wait)).encode()
	if err != nil {
		return false, err
	}
	ok, err := call[bool](ctx, a.c, "recover_from_snapshot", http.MethodPut, path, query, req)
	if err != nil {
		return false, err
	}
	return *ok, nil
}

// CreateFull takes a snapshot of the whole storage.
func (a *SnapshotsAPI) CreateFull(ctx context.Context) (*SnapshotDescription, error) {
	return call[SnapshotDescription](ctx, a.c, "create_full_snapshot", http.MethodPost, "/snapshots", nil, nil)
}

// ListFull returns the full storage snapshots.
func (a *SnapshotsAPI) ListFull(ctx context.Context) ([]SnapshotDescription, error) {
	res, err := call[[]SnapshotDescription](ctx, a.c, "list_full_snapshots", http.MethodGet, "/snapshots", nil, nil)
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// DeleteFull removes a full storage snapshot.
func (a *SnapshotsAPI) DeleteFull(ctx context.Context, snapshot string) (bool, error) {
	name, err := pathParam("snapshot_name", snapshot)
	if err != nil {
		return false, err
	}
	ok, err := call[bool](ctx, a.c, "delete_full_snapshot", http.MethodDelete, "/snapshots/"+name, nil, nil)
	if err != nil {
		return false, err
	}
	return *ok, nil
}
