package main

import (
	"context"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/qdrant"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/rest"
	pb "github.com/qdrant/go-client/qdrant"
)

type serverInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type collectionSummary struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Points   uint64 `json:"points_count"`
	Segments uint64 `json:"segments_count"`
}

type snapshot struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"creation_time,omitempty"`
}

// backend is the subset of client operations the commands need, implemented
// once per transport.
type backend interface {
	Health(ctx context.Context) (serverInfo, error)
	ListCollections(ctx context.Context) ([]string, error)
	GetCollection(ctx context.Context, name string) (collectionSummary, error)
	DeleteCollection(ctx context.Context, name string) (bool, error)
	ListSnapshots(ctx context.Context, collection string) ([]snapshot, error)
	CreateSnapshot(ctx context.Context, collection string) (snapshot, error)
	Close() error
}

type restBackend struct {
	c *rest.Client
}

func (b restBackend) Health(ctx context.Context) (serverInfo, error) {
	info, err := b.c.Service().VersionInfo(ctx)
	if err != nil {
		return serverInfo{}, err
	}
	return serverInfo{Title: info.Title, Version: info.Version}, nil
}

func (b restBackend) ListCollections(ctx context.Context) ([]string, error) {
	resp, err := b.c.Collections().List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Collections))
	for _, col := range resp.Collections {
		names = append(names, col.Name)
	}
	return names, nil
}

func (b restBackend) GetCollection(ctx context.Context, name string) (collectionSummary, error) {
	info, err := b.c.Collections().Get(ctx, name)
	if err != nil {
		return collectionSummary{}, err
	}
	out := collectionSummary{Name: name, Status: info.Status, Segments: info.SegmentsCount}
	if info.PointsCount != nil {
		out.Points = *info.PointsCount
	}
	return out, nil
}

func (b restBackend) DeleteCollection(ctx context.Context, name string) (bool, error) {
	return b.c.Collections().Delete(ctx, name)
}

func (b restBackend) ListSnapshots(ctx context.Context, collection string) ([]snapshot, error) {
	list, err := b.c.Snapshots().List(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]snapshot, 0, len(list))
	for _, s := range list {
		out = append(out, restSnapshot(s))
	}
	return out, nil
}

func (b restBackend) CreateSnapshot(ctx context.Context, collection string) (snapshot, error) {
	s, err := b.c.Snapshots().Create(ctx, collection)
	if err != nil {
		return snapshot{}, err
	}
	return restSnapshot(*s), nil
}

func (b restBackend) Close() error { return b.c.Close() }

func restSnapshot(s rest.SnapshotDescription) snapshot {
	out := snapshot{Name: s.Name, Size: s.Size}
	if s.CreationTime != nil {
		out.CreatedAt = *s.CreationTime
	}
	return out
}

type grpcBackend struct {
	c *qdrant.Client
}

func (b grpcBackend) Health(ctx context.Context) (serverInfo, error) {
	reply, err := b.c.HealthCheck(ctx)
	if err != nil {
		return serverInfo{}, err
	}
	return serverInfo{Title: reply.GetTitle(), Version: reply.GetVersion()}, nil
}

func (b grpcBackend) ListCollections(ctx context.Context) ([]string, error) {
	return b.c.ListCollections(ctx)
}

func (b grpcBackend) GetCollection(ctx context.Context, name string) (collectionSummary, error) {
	info, err := b.c.GetCollectionInfo(ctx, name)
	if err != nil {
		return collectionSummary{}, err
	}
	return collectionSummary{
		Name:     name,
		Status:   info.GetStatus().String(),
		Points:   info.GetPointsCount(),
		Segments: info.GetSegmentsCount(),
	}, nil
}

func (b grpcBackend) DeleteCollection(ctx context.Context, name string) (bool, error) {
	return b.c.DeleteCollection(ctx, name)
}

func (b grpcBackend) ListSnapshots(ctx context.Context, collection string) ([]snapshot, error) {
	list, err := b.c.ListSnapshots(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]snapshot, 0, len(list))
	for _, s := range list {
		out = append(out, grpcSnapshot(s))
	}
	return out, nil
}

func (b grpcBackend) CreateSnapshot(ctx context.Context, collection string) (snapshot, error) {
	s, err := b.c.CreateSnapshot(ctx, collection)
	if err != nil {
		return snapshot{}, err
	}
	return grpcSnapshot(s), nil
}

func (b grpcBackend) Close() error { return b.c.Close() }

func grpcSnapshot(s *pb.SnapshotDescription) snapshot {
	out := snapshot{Name: s.GetName(), Size: s.GetSize()}
	if ts := s.GetCreationTime(); ts != nil {
		out.CreatedAt = ts.AsTime().UTC().Format("2006-01-02T15:04:05")
	}
	return out
}
