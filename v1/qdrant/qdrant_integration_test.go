//go:build integration

package qdrant

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/logger"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/rest"
	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const qdrantImage = "qdrant/qdrant:v1.16.0"

// QdrantContainer represents a Qdrant container for testing
type QdrantContainer struct {
	testcontainers.Container
	Host     string
	GRPCPort int
	RESTPort int
}

// setupQdrantContainer starts Qdrant with both ports published on random
// host ports.
func setupQdrantContainer(ctx context.Context) (*QdrantContainer, error) {
	req := testcontainers.ContainerRequest{
		Image: qdrantImage,
		Env: map[string]string{
			"QDRANT__SERVICE__GRPC_PORT": "6334",
		},
		ExposedPorts: []string{"6333/tcp", "6334/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				"6333/tcp": []nat.PortBinding{{HostIP: "127.0.0.1"}},
				"6334/tcp": []nat.PortBinding{{HostIP: "127.0.0.1"}},
			}
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("6334/tcp").WithStartupTimeout(60*time.Second),
			wait.ForHTTP("/readyz").WithPort("6333/tcp").WithStartupTimeout(60*time.Second),
		),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start qdrant container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	ports := make(map[nat.Port]int, 2)
	for _, p := range []nat.Port{"6333", "6334"} {
		mapped, err := c.MappedPort(ctx, p)
		if err != nil {
			_ = c.Terminate(ctx)
			return nil, fmt.Errorf("failed to get mapped port %s: %w", p, err)
		}
		n, err := strconv.Atoi(mapped.Port())
		if err != nil {
			_ = c.Terminate(ctx)
			return nil, err
		}
		ports[p] = n
	}

	return &QdrantContainer{
		Container: c,
		Host:      host,
		RESTPort:  ports["6333"],
		GRPCPort:  ports["6334"],
	}, nil
}

func TestQdrantWithFXModule(t *testing.T) {
	ctx := context.Background()
	qc, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := qc.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()
	t.Logf("Using Qdrant on %s (grpc %d)", qc.Host, qc.GRPCPort)

	var client *Client
	app := fxtest.New(t,
		fx.Provide(func() *Config {
			return FromHost(qc.Host).WithPort(qc.GRPCPort).WithTimeout(10 * time.Second)
		}),
		fx.Provide(func() logger.Logger { return logger.NewNop() }),
		FXModule,
		fx.Populate(&client),
	)
	app.RequireStart()
	defer app.RequireStop()

	select {
	case res := <-client.Compatibility():
		assert.NotEqual(t, transport.Incompatible, res)
	case <-time.After(15 * time.Second):
		t.Fatal("compatibility check did not finish")
	}

	reply, err := client.HealthCheck(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, reply.GetVersion())

	const collection = "integration_docs"

	t.Run("EnsureCollection", func(t *testing.T) {
		req := &qdrant.CreateCollection{
			CollectionName: collection,
			VectorsConfig:  qdrant.NewVectorsConfig(&qdrant.VectorParams{Size: 4, Distance: qdrant.Distance_Cosine}),
		}
		require.NoError(t, client.EnsureCollection(ctx, req))
		require.NoError(t, client.EnsureCollection(ctx, req))

		names, err := client.ListCollections(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, collection)

		info, err := client.GetCollectionInfo(ctx, collection)
		require.NoError(t, err)
		size, distance := VectorDetails(info)
		assert.Equal(t, uint64(4), size)
		assert.Equal(t, "Cosine", distance)
	})

	t.Run("UpsertSearchCount", func(t *testing.T) {
		points := make([]*qdrant.PointStruct, 0, 20)
		for i := 1; i <= 20; i++ {
			f := float32(i)
			points = append(points, &qdrant.PointStruct{
				Id:      qdrant.NewIDNum(uint64(i)),
				Vectors: qdrant.NewVectors(f, f/2, f/3, 1),
				Payload: qdrant.NewValueMap(map[string]any{"n": i, "even": i%2 == 0}),
			})
		}
		res, err := client.Upsert(ctx, &qdrant.UpsertPoints{CollectionName: collection, Points: points})
		require.NoError(t, err)
		assert.Equal(t, qdrant.UpdateStatus_Completed, res.GetStatus())

		hits, err := client.Search(ctx, &qdrant.SearchPoints{
			CollectionName: collection,
			Vector:         []float32{1, 0.5, 0.33, 1},
		})
		require.NoError(t, err)
		require.Len(t, hits, DefaultLimit)
		assert.NotEmpty(t, PayloadToMap(hits[0].GetPayload()))
		assert.Nil(t, hits[0].GetVectors())

		n, err := client.Count(ctx, &qdrant.CountPoints{
			CollectionName: collection,
			Filter:         &qdrant.Filter{Must: []*qdrant.Condition{qdrant.NewMatchBool("even", true)}},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(10), n)

		page, next, err := client.Scroll(ctx, &qdrant.ScrollPoints{CollectionName: collection, Limit: qdrant.PtrOf(uint32(5))})
		require.NoError(t, err)
		assert.Len(t, page, 5)
		assert.NotNil(t, next)
	})

	t.Run("RESTSeesSameData", func(t *testing.T) {
		rc, err := rest.NewClient(rest.FromHost(qc.Host).WithPort(qc.RESTPort), rest.WithLogger(logger.NewNop()))
		require.NoError(t, err)
		defer rc.Close()

		n, err := rc.Count(ctx, collection, rest.CountRequest{})
		require.NoError(t, err)
		assert.Equal(t, uint64(20), n)

		hits, err := rc.Search(ctx, collection, rest.SearchRequest{Vector: []float32{1, 0.5, 0.33, 1}})
		require.NoError(t, err)
		assert.Len(t, hits, DefaultLimit)
	})

	t.Run("Snapshots", func(t *testing.T) {
		snap, err := client.CreateSnapshot(ctx, collection)
		require.NoError(t, err)

		list, err := client.ListSnapshots(ctx, collection)
		require.NoError(t, err)
		assert.NotEmpty(t, list)

		require.NoError(t, client.DeleteSnapshot(ctx, collection, snap.GetName()))
	})

	t.Run("MissingCollection", func(t *testing.T) {
		_, err := client.GetCollectionInfo(ctx, "does_not_exist")
		require.Error(t, err)
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("DeleteCollection", func(t *testing.T) {
		ok, err := client.DeleteCollection(ctx, collection)
		require.NoError(t, err)
		assert.True(t, ok)

		exists, err := client.CollectionExists(ctx, collection)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
