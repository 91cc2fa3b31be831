package rest

import (
	"context"
	"net/http"
)

// CollectionsAPI manages collections, aliases and payload indexes.
type CollectionsAPI struct {
	c *Client
}

func collectionPath(name string, suffix string) (string, error) {
	p, err := pathParam("collection_name", name)
	if err != nil {
		return "", err
	}
	return "/collections/" + p + suffix, nil
}

// List returns all collections.
func (a *CollectionsAPI) List(ctx context.Context) (*CollectionsResponse, error) {
	return call[CollectionsResponse](ctx, a.c, "get_collections", http.MethodGet, "/collections", nil, nil)
}

// Get returns the detailed state of a collection.
func (a *CollectionsAPI) Get(ctx context.Context, name string) (*CollectionInfo, error) {
	path, err := collectionPath(name, "")
	if err != nil {
		return nil, err
	}
	return call[CollectionInfo](ctx, a.c, "get_collection", http.MethodGet, path, nil, nil)
}

// Create creates a collection.
func (a *CollectionsAPI) Create(ctx context.Context, name string, req CreateCollection) (bool, error) {
	path, err := collectionPath(name, "")
	if err != nil {
		return false, err
	}
	ok, err := call[bool](ctx, a.c, "create_collection", http.MethodPut, path, nil, req)
	if err != nil {
		return false, err
	}
	return *ok, nil
}

// Update changes collection parameters.
func (a *CollectionsAPI) Update(ctx context.Context, name string, req UpdateCollection) (bool, error) {
	path, err := collectionPath(name, "")
	if err != nil {
		return false, err
	}
	ok, err := call[bool](ctx, a.c, "update_collection", http.MethodPatch, path, nil, req)
	if err != nil {
		return false, err
	}
	return *ok, nil
}

// Delete drops a collection and all its data.
func (a *CollectionsAPI) Delete(ctx context.Context, name string) (bool, error) {
	path, err := collectionPath(name, "")
	if err != nil {
		return false, err
	}
	ok, err := call[bool](ctx, a.c, "delete_collection", http.MethodDelete, path, nil, nil)
	if err != nil {
		return false, err
	}
	return *ok, nil
}

// Exists reports whether a collection exists.
func (a *CollectionsAPI) Exists(ctx context.Context, name string) (bool, error) {
	path, err := collectionPath(name, "/exists")
	if err != nil {
		return false, err
	}
	res, err := call[CollectionExistence](ctx, a.c, "collection_exists", http.MethodGet, path, nil, nil)
	if err != nil {
		return false, err
	}
	return res.Exists, nil
}

// UpdateAliases applies alias actions atomically.
func (a *CollectionsAPI) UpdateAliases(ctx context.Context, req ChangeAliasesOperation) (bool, error) {
	ok, err := call[bool](ctx, a.c, "update_aliases", http.MethodPost, "/collections/aliases", nil, req)
	if err != nil {
		return false, err
	}
	return *ok, nil
}

// ListCollectionAliases returns the aliases of one collection.
func (a *CollectionsAPI) ListCollectionAliases(ctx context.Context, name string) (*CollectionsAliasesResponse, error) {
	path, err := collectionPath(name, "/aliases")
	if err != nil {
		return nil, err
	}
	return call[CollectionsAliasesResponse](ctx, a.c, "get_collection_aliases", http.MethodGet, path, nil, nil)
}

// ListAliases returns all aliases.
func (a *CollectionsAPI) ListAliases(ctx context.Context) (*CollectionsAliasesResponse, error) {
	return call[CollectionsAliasesResponse](ctx, a.c, "get_collections_aliases", http.MethodGet, "/aliases", nil, nil)
}

// CreatePayloadIndex indexes a payload field. wait defaults to true.
func (a *CollectionsAPI) CreatePayloadIndex(ctx context.Context, name string, req CreateFieldIndex, wait *bool) (*UpdateResult, error) {
	path, err := collectionPath(name, "/index")
	if err != nil {
		return nil, err
	}
	query, err := newQuery().add("wait", waitOrDefault(wait)).encode()
	if err != nil {
		return nil, err
	}
	return call[UpdateResult](ctx, a.c, "create_field_index", http.MethodPut, path, query, req)
}

// DeletePayloadIndex removes a payload field index. wait defaults to true.
func (a *CollectionsAPI) DeletePayloadIndex(ctx context.Context, name, field string, wait *bool) (*UpdateResult, error) {
	path, err := collectionPath(name, "/index/")
	if err != nil {
		return nil, err
	}
	fieldParam, err := pathParam("field_name", field)
	if err != nil {
		return nil, err
	}
	query, err := newQuery().add("wait", waitOrDefault(wait)).encode()
	if err != nil {
		return nil, err
	}
	return call[UpdateResult](ctx, a.c, "delete_field_index", http.MethodDelete, path+fieldParam, query, nil)
}
