package qdrant

import (
	"fmt"
	"strconv"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// NewPayload converts a Go map into the protobuf payload representation,
// returning an error for unsupported value types instead of panicking.
func NewPayload(values map[string]any) (map[string]*qdrant.Value, error) {
	payload, err := qdrant.TryValueMap(values)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to convert payload: %w", err)
	}
	return payload, nil
}

// PayloadToMap converts a protobuf payload back into plain Go values.
// Integers become int64, floats float64, nested structs map[string]any and
// lists []any.
func PayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = ValueToAny(v)
	}
	return result
}

// ValueToAny recursively converts one protobuf value.
func ValueToAny(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return PayloadToMap(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = ValueToAny(item)
		}
		return items
	default:
		return nil
	}
}

// PointIDString renders a point id as its number or UUID.
func PointIDString(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("[Qdrant] nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return strconv.FormatUint(v.Num, 10), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("[Qdrant] unexpected PointId type: %T", v)
	}
}

// ParsePointID is the inverse of PointIDString: unsigned integers become
// numeric ids, anything else a UUID id.
func ParsePointID(s string) *qdrant.PointId {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return qdrant.NewIDNum(n)
	}
	return qdrant.NewID(s)
}

// VectorDetails ──────────────────────────────────────────────────────────────
// VectorDetails
// ──────────────────────────────────────────────────────────────
//
// VectorDetails extracts the vector size and distance metric of the unnamed
// vector of a collection. Collections configured with named vectors, or
// with missing config, yield (0, "").
//
// Example:
//
//	size, distance := qdrant.VectorDetails(info)
func VectorDetails(info *qdrant.CollectionInfo) (uint64, string) {
	params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return 0, ""
	}
	return params.GetSize(), params.GetDistance().String()
}
