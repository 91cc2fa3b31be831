package rest

import (
	"context"
	"net/http"
)

// ClusterAPI inspects and repairs distributed deployments.
type ClusterAPI struct {
	c *Client
}

// Status returns the cluster state as seen by the contacted peer.
func (a *ClusterAPI) Status(ctx context.Context) (*ClusterStatus, error) {
	return call[ClusterStatus](ctx, a.c, "cluster_status", http.MethodGet, "/cluster", nil, nil)
}

// CollectionClusterInfo returns the shard layout of a collection.
func (a *ClusterAPI) CollectionClusterInfo(ctx context.Context, collection string) (*CollectionClusterInfo, error) {
	path, err := collectionPath(collection, "/cluster")
	if err != nil {
		return nil, err
	}
	return call[CollectionClusterInfo](ctx, a.c, "collection_cluster_info", http.MethodGet, path, nil, nil)
}

// Recover asks the peer to recover its raft state.
func (a *ClusterAPI) Recover(ctx context.Context) (bool, error) {
	ok, err := call[bool](ctx, a.c, "recover_current_peer", http.MethodPost, "/cluster/recover", nil, nil)
	if err != nil {
		return false, err
	}
	return *ok, nil
}

// RemovePeer removes a peer from the cluster. With force the peer is removed
// even if it still holds shards.
func (a *ClusterAPI) RemovePeer(ctx context.Context, peerID uint64, force bool) (bool, error) {
	peer, err := pathParam("peer_id", peerID)
	if err != nil {
		return false, err
	}
	query, err := newQuery().add("force", force).encode()
	if err != nil {
		return false, err
	}
	ok, err := call[bool](ctx, a.c, "remove_peer", http.MethodDelete, "/cluster/peer/"+peer, query, nil)
	if err != nil {
		return false, err
	}
	return *ok, nil
}
