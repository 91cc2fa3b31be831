package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/proto"
)

// Defaults applied to read requests that leave the field unset.
const (
	DefaultLimit       = 10
	DefaultOffset      = 0
	DefaultWithPayload = true
	DefaultWithVector  = false
	DefaultExact       = true
	DefaultWait        = true
)

// prepare validates req and returns a deep copy the caller never observes,
// so defaults can be filled in without touching the caller's message.
func prepare[T proto.Message](op string, req T) (T, error) {
	if !req.ProtoReflect().IsValid() {
		var zero T
		return zero, fmt.Errorf("[Qdrant] %s: request must not be nil", op)
	}
	return proto.Clone(req).(T), nil
}

func wrap(op string, err error) error {
	return fmt.Errorf("[Qdrant] %s: %w", op, err)
}

func withPayloadOrDefault(s *qdrant.WithPayloadSelector) *qdrant.WithPayloadSelector {
	if s == nil {
		return qdrant.NewWithPayload(DefaultWithPayload)
	}
	return s
}

func withVectorsOrDefault(s *qdrant.WithVectorsSelector) *qdrant.WithVectorsSelector {
	if s == nil {
		return qdrant.NewWithVectors(DefaultWithVector)
	}
	return s
}

func waitOrDefault(wait *bool) *bool {
	if wait == nil {
		return qdrant.PtrOf(DefaultWait)
	}
	return wait
}

func applySearchDefaults(req *qdrant.SearchPoints) {
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	if req.Offset == nil {
		req.Offset = qdrant.PtrOf(uint64(DefaultOffset))
	}
	req.WithPayload = withPayloadOrDefault(req.WithPayload)
	req.WithVectors = withVectorsOrDefault(req.WithVectors)
}

func applyRecommendDefaults(req *qdrant.RecommendPoints) {
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	if req.Offset == nil {
		req.Offset = qdrant.PtrOf(uint64(DefaultOffset))
	}
	req.WithPayload = withPayloadOrDefault(req.WithPayload)
	req.WithVectors = withVectorsOrDefault(req.WithVectors)
}

func applyScrollDefaults(req *qdrant.ScrollPoints) {
	req.WithPayload = withPayloadOrDefault(req.WithPayload)
	req.WithVectors = withVectorsOrDefault(req.WithVectors)
}

func applyGetDefaults(req *qdrant.GetPoints) {
	req.WithPayload = withPayloadOrDefault(req.WithPayload)
}

func applyCountDefaults(req *qdrant.CountPoints) {
	if req.Exact == nil {
		req.Exact = qdrant.PtrOf(DefaultExact)
	}
}

func applyQueryDefaults(req *qdrant.QueryPoints) {
	if req.Limit == nil {
		req.Limit = qdrant.PtrOf(uint64(DefaultLimit))
	}
}
