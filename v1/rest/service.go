package rest

import (
	"context"
	"encoding/json"
	"net/http"
)

// ServiceAPI covers version, health, telemetry and storage locks.
type ServiceAPI struct {
	c *Client
}

// VersionInfo returns the server title and version. The root endpoint is
// not wrapped in a result envelope.
func (a *ServiceAPI) VersionInfo(ctx context.Context) (*VersionInfo, error) {
	var info VersionInfo
	if err := a.c.do(ctx, "root", http.MethodGet, "/", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Healthz succeeds when the server answers its health endpoint.
func (a *ServiceAPI) Healthz(ctx context.Context) error {
	return a.c.do(ctx, "healthz", http.MethodGet, "/healthz", nil, nil, nil)
}

// Telemetry returns the raw telemetry report.
func (a *ServiceAPI) Telemetry(ctx context.Context, anonymize bool) (json.RawMessage, error) {
	query, err := newQuery().add("anonymize", anonymize).encode()
	if err != nil {
		return nil, err
	}
	res, err := call[json.RawMessage](ctx, a.c, "telemetry", http.MethodGet, "/telemetry", query, nil)
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// GetLocks returns the storage write lock state.
func (a *ServiceAPI) GetLocks(ctx context.Context) (*LocksOption, error) {
	return call[LocksOption](ctx, a.c, "get_locks", http.MethodGet, "/locks", nil, nil)
}

// LockStorage sets the storage write lock and returns the previous state.
// reason is reported to writers while the lock is held.
func (a *ServiceAPI) LockStorage(ctx context.Context, write bool, reason string) (*LocksOption, error) {
	req := LocksOption{Write: write}
	if reason != "" {
		req.ErrorMessage = &reason
	}
	return call[LocksOption](ctx, a.c, "post_locks", http.MethodPost, "/locks", nil, req)
}
