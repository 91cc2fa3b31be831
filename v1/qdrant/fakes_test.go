package qdrant

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/logger"
	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
)

// Collection names that make the fake server misbehave.
const (
	slowCollection         = "slow"
	emptyCollection        = "empty"
	limitedCollection      = "limited"
	badRetryCollection     = "limited-bad"
	noRetryAfterCollection = "limited-none"
)

// recorder stores every request the fake server received together with the
// incoming metadata of the last one.
type recorder struct {
	mu   sync.Mutex
	reqs []proto.Message
	md   metadata.MD
}

func (r *recorder) record(ctx context.Context, req proto.Message) {
	md, _ := metadata.FromIncomingContext(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	r.md = md
}

func (r *recorder) last(t *testing.T) proto.Message {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.reqs)
	return r.reqs[len(r.reqs)-1]
}

func (r *recorder) metadata() metadata.MD {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.md
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

type fakeService struct {
	qdrant.UnimplementedQdrantServer
	rec     *recorder
	version string
}

func (s *fakeService) HealthCheck(ctx context.Context, req *qdrant.HealthCheckRequest) (*qdrant.HealthCheckReply, error) {
	s.rec.record(ctx, req)
	return &qdrant.HealthCheckReply{Title: "qdrant - vector search engine", Version: s.version}, nil
}

type fakeCollections struct {
	qdrant.UnimplementedCollectionsServer
	rec      *recorder
	existing map[string]bool
}

func (s *fakeCollections) List(ctx context.Context, req *qdrant.ListCollectionsRequest) (*qdrant.ListCollectionsResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.ListCollectionsResponse{Collections: []*qdrant.CollectionDescription{{Name: "a"}, {Name: "b"}}}, nil
}

func (s *fakeCollections) Get(ctx context.Context, req *qdrant.GetCollectionInfoRequest) (*qdrant.GetCollectionInfoResponse, error) {
	s.rec.record(ctx, req)
	if req.GetCollectionName() == emptyCollection {
		return &qdrant.GetCollectionInfoResponse{}, nil
	}
	return &qdrant.GetCollectionInfoResponse{Result: &qdrant.CollectionInfo{
		Config: &qdrant.CollectionConfig{Params: &qdrant.CollectionParams{
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{Size: 4, Distance: qdrant.Distance_Cosine}),
		}},
	}}, nil
}

func (s *fakeCollections) Create(ctx context.Context, req *qdrant.CreateCollection) (*qdrant.CollectionOperationResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.CollectionOperationResponse{Result: true}, nil
}

func (s *fakeCollections) Delete(ctx context.Context, req *qdrant.DeleteCollection) (*qdrant.CollectionOperationResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.CollectionOperationResponse{Result: true}, nil
}

func (s *fakeCollections) CollectionExists(ctx context.Context, req *qdrant.CollectionExistsRequest) (*qdrant.CollectionExistsResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.CollectionExistsResponse{Result: &qdrant.CollectionExists{Exists: s.existing[req.GetCollectionName()]}}, nil
}

func (s *fakeCollections) UpdateAliases(ctx context.Context, req *qdrant.ChangeAliases) (*qdrant.CollectionOperationResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.CollectionOperationResponse{Result: true}, nil
}

func (s *fakeCollections) ListAliases(ctx context.Context, req *qdrant.ListAliasesRequest) (*qdrant.ListAliasesResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.ListAliasesResponse{Aliases: []*qdrant.AliasDescription{{AliasName: "latest", CollectionName: "a"}}}, nil
}

type fakePoints struct {
	qdrant.UnimplementedPointsServer
	rec *recorder
}

func (s *fakePoints) Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.PointsOperationResponse, error) {
	s.rec.record(ctx, req)
	if req.GetCollectionName() == emptyCollection {
		return &qdrant.PointsOperationResponse{}, nil
	}
	return &qdrant.PointsOperationResponse{Result: &qdrant.UpdateResult{
		OperationId: qdrant.PtrOf(uint64(7)),
		Status:      qdrant.UpdateStatus_Completed,
	}}, nil
}

func (s *fakePoints) Delete(ctx context.Context, req *qdrant.DeletePoints) (*qdrant.PointsOperationResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.PointsOperationResponse{Result: &qdrant.UpdateResult{Status: qdrant.UpdateStatus_Completed}}, nil
}

func (s *fakePoints) SetPayload(ctx context.Context, req *qdrant.SetPayloadPoints) (*qdrant.PointsOperationResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.PointsOperationResponse{Result: &qdrant.UpdateResult{Status: qdrant.UpdateStatus_Completed}}, nil
}

func (s *fakePoints) Get(ctx context.Context, req *qdrant.GetPoints) (*qdrant.GetResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.GetResponse{Result: []*qdrant.RetrievedPoint{{Id: qdrant.NewIDNum(1)}}}, nil
}

func (s *fakePoints) Search(ctx context.Context, req *qdrant.SearchPoints) (*qdrant.SearchResponse, error) {
	s.rec.record(ctx, req)

	switch req.GetCollectionName() {
	case slowCollection:
		<-ctx.Done()
		return nil, status.FromContextError(ctx.Err()).Err()
	case limitedCollection:
		_ = grpc.SetTrailer(ctx, metadata.Pairs(retryAfterHeader, "3"))
		return nil, status.Error(codes.ResourceExhausted, "rate limited")
	case badRetryCollection:
		_ = grpc.SetTrailer(ctx, metadata.Pairs(retryAfterHeader, "soon"))
		return nil, status.Error(codes.ResourceExhausted, "rate limited")
	case noRetryAfterCollection:
		return nil, status.Error(codes.ResourceExhausted, "rate limited")
	}

	return &qdrant.SearchResponse{Result: []*qdrant.ScoredPoint{
		{Id: qdrant.NewIDNum(1), Score: 0.9, Payload: qdrant.NewValueMap(map[string]any{"city": "Berlin"})},
	}}, nil
}

func (s *fakePoints) SearchBatch(ctx context.Context, req *qdrant.SearchBatchPoints) (*qdrant.SearchBatchResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.SearchBatchResponse{Result: make([]*qdrant.BatchResult, len(req.GetSearchPoints()))}, nil
}

func (s *fakePoints) Recommend(ctx context.Context, req *qdrant.RecommendPoints) (*qdrant.RecommendResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.RecommendResponse{}, nil
}

func (s *fakePoints) Scroll(ctx context.Context, req *qdrant.ScrollPoints) (*qdrant.ScrollResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.ScrollResponse{
		Result:         []*qdrant.RetrievedPoint{{Id: qdrant.NewIDNum(1)}},
		NextPageOffset: qdrant.NewIDNum(2),
	}, nil
}

func (s *fakePoints) Count(ctx context.Context, req *qdrant.CountPoints) (*qdrant.CountResponse, error) {
	s.rec.record(ctx, req)
	if req.GetCollectionName() == emptyCollection {
		return &qdrant.CountResponse{}, nil
	}
	return &qdrant.CountResponse{Result: &qdrant.CountResult{Count: 42}}, nil
}

func (s *fakePoints) Query(ctx context.Context, req *qdrant.QueryPoints) (*qdrant.QueryResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.QueryResponse{}, nil
}

type fakeSnapshots struct {
	qdrant.UnimplementedSnapshotsServer
	rec *recorder
}

func (s *fakeSnapshots) Create(ctx context.Context, req *qdrant.CreateSnapshotRequest) (*qdrant.CreateSnapshotResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.CreateSnapshotResponse{SnapshotDescription: &qdrant.SnapshotDescription{Name: req.GetCollectionName() + ".snapshot"}}, nil
}

func (s *fakeSnapshots) List(ctx context.Context, req *qdrant.ListSnapshotsRequest) (*qdrant.ListSnapshotsResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.ListSnapshotsResponse{SnapshotDescriptions: []*qdrant.SnapshotDescription{{Name: "one"}, {Name: "two"}}}, nil
}

func (s *fakeSnapshots) Delete(ctx context.Context, req *qdrant.DeleteSnapshotRequest) (*qdrant.DeleteSnapshotResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.DeleteSnapshotResponse{}, nil
}

func (s *fakeSnapshots) CreateFull(ctx context.Context, req *qdrant.CreateFullSnapshotRequest) (*qdrant.CreateSnapshotResponse, error) {
	s.rec.record(ctx, req)
	return &qdrant.CreateSnapshotResponse{}, nil
}

// fakeServer is an in-memory Qdrant gRPC server on a bufconn listener.
type fakeServer struct {
	rec         *recorder
	lis         *bufconn.Listener
	collections *fakeCollections
	service     *fakeService
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	rec := &recorder{}
	fs := &fakeServer{
		rec:         rec,
		lis:         bufconn.Listen(1 << 20),
		collections: &fakeCollections{rec: rec, existing: map[string]bool{"a": true}},
		service:     &fakeService{rec: rec, version: "1.16.0"},
	}

	srv := grpc.NewServer()
	qdrant.RegisterQdrantServer(srv, fs.service)
	qdrant.RegisterCollectionsServer(srv, fs.collections)
	qdrant.RegisterPointsServer(srv, &fakePoints{rec: rec})
	qdrant.RegisterSnapshotsServer(srv, &fakeSnapshots{rec: rec})

	go func() { _ = srv.Serve(fs.lis) }()
	t.Cleanup(srv.Stop)
	return fs
}

func (fs *fakeServer) dialer() grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return fs.lis.DialContext(ctx)
	})
}

// newTestClient connects a client to fs. The host is only used for name
// resolution; the bufconn dialer ignores the resolved address.
func newTestClient(t *testing.T, fs *fakeServer, cfg *Config, opts ...Option) *Client {
	t.Helper()
	if cfg == nil {
		cfg = FromHost("localhost")
	}
	cfg.CheckCompatibility = false

	opts = append([]Option{WithLogger(logger.NewNop()), WithDialOptions(fs.dialer())}, opts...)
	client, err := NewClient(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}
