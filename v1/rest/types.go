package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PointID is either an unsigned integer or a UUID string.
type PointID struct {
	Num  *uint64
	UUID string
}

// NewIDNum returns a numeric point id.
func NewIDNum(n uint64) PointID { return PointID{Num: &n} }

// NewIDUUID returns a UUID point id.
func NewIDUUID(uuid string) PointID { return PointID{UUID: uuid} }

func (id PointID) String() string {
	if id.Num != nil {
		return strconv.FormatUint(*id.Num, 10)
	}
	return id.UUID
}

func (id PointID) MarshalJSON() ([]byte, error) {
	if id.Num != nil {
		return []byte(strconv.FormatUint(*id.Num, 10)), nil
	}
	return json.Marshal(id.UUID)
}

func (id *PointID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		id.Num = nil
		return json.Unmarshal(data, &id.UUID)
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid point id %s: %w", data, err)
	}
	id.Num, id.UUID = &n, ""
	return nil
}

// Payload is the JSON document attached to a point.
type Payload map[string]any

// Filter narrows points by payload conditions. Conditions are passed through
// as their JSON shape, e.g. {"key": "city", "match": {"value": "Berlin"}}.
type Filter struct {
	Must    []any `json:"must,omitempty"`
	Should  []any `json:"should,omitempty"`
	MustNot []any `json:"must_not,omitempty"`
}

// VersionInfo is returned by the root endpoint.
type VersionInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
}

// UpdateResult acknowledges a write.
type UpdateResult struct {
	OperationID *uint64 `json:"operation_id,omitempty"`
	Status      string  `json:"status"`
}

// Collections

type CollectionDescription struct {
	Name string `json:"name"`
}

type CollectionsResponse struct {
	Collections []CollectionDescription `json:"collections"`
}

type CollectionExistence struct {
	Exists bool `json:"exists"`
}

// VectorParams configures a dense vector space.
type VectorParams struct {
	Size     uint64 `json:"size"`
	Distance string `json:"distance"`
	OnDisk   *bool  `json:"on_disk,omitempty"`
}

// CreateCollection is the body of PUT /collections/{name}. Vectors is either
// a VectorParams or a map of named VectorParams.
type CreateCollection struct {
	Vectors            any            `json:"vectors,omitempty"`
	SparseVectors      map[string]any `json:"sparse_vectors,omitempty"`
	ShardNumber        *uint32        `json:"shard_number,omitempty"`
	ReplicationFactor  *uint32        `json:"replication_factor,omitempty"`
	OnDiskPayload      *bool          `json:"on_disk_payload,omitempty"`
	HnswConfig         map[string]any `json:"hnsw_config,omitempty"`
	OptimizersConfig   map[string]any `json:"optimizers_config,omitempty"`
	QuantizationConfig map[string]any `json:"quantization_config,omitempty"`
}

// UpdateCollection is the body of PATCH /collections/{name}.
type UpdateCollection struct {
	Vectors          map[string]any `json:"vectors,omitempty"`
	OptimizersConfig map[string]any `json:"optimizers_config,omitempty"`
	Params           map[string]any `json:"params,omitempty"`
	HnswConfig       map[string]any `json:"hnsw_config,omitempty"`
}

type CollectionInfo struct {
	Status              string                     `json:"status"`
	OptimizerStatus     json.RawMessage            `json:"optimizer_status,omitempty"`
	PointsCount         *uint64                    `json:"points_count,omitempty"`
	IndexedVectorsCount *uint64                    `json:"indexed_vectors_count,omitempty"`
	SegmentsCount       uint64                     `json:"segments_count"`
	Config              json.RawMessage            `json:"config,omitempty"`
	PayloadSchema       map[string]json.RawMessage `json:"payload_schema,omitempty"`
}

type CreateAlias struct {
	CollectionName string `json:"collection_name"`
	AliasName      string `json:"alias_name"`
}

type DeleteAlias struct {
	AliasName string `json:"alias_name"`
}

type RenameAlias struct {
	OldAliasName string `json:"old_alias_name"`
	NewAliasName string `json:"new_alias_name"`
}

// AliasAction holds exactly one alias operation.
type AliasAction struct {
	CreateAlias *CreateAlias `json:"create_alias,omitempty"`
	DeleteAlias *DeleteAlias `json:"delete_alias,omitempty"`
	RenameAlias *RenameAlias `json:"rename_alias,omitempty"`
}

type ChangeAliasesOperation struct {
	Actions []AliasAction `json:"actions"`
}

type AliasDescription struct {
	AliasName      string `json:"alias_name"`
	CollectionName string `json:"collection_name"`
}

type CollectionsAliasesResponse struct {
	Aliases []AliasDescription `json:"aliases"`
}

// CreateFieldIndex is the body of PUT /collections/{name}/index. FieldSchema
// is a type name such as "keyword" or a parameterized schema object.
type CreateFieldIndex struct {
	FieldName   string `json:"field_name"`
	FieldSchema any    `json:"field_schema,omitempty"`
}

// Points

type PointStruct struct {
	ID      PointID `json:"id"`
	Vector  any     `json:"vector"`
	Payload Payload `json:"payload,omitempty"`
}

type PointsList struct {
	Points   []PointStruct `json:"points"`
	ShardKey any           `json:"shard_key,omitempty"`
}

type Record struct {
	ID       PointID `json:"id"`
	Payload  Payload `json:"payload,omitempty"`
	Vector   any     `json:"vector,omitempty"`
	ShardKey any     `json:"shard_key,omitempty"`
}

// PointRequest retrieves points by id. WithPayload and WithVector accept a
// bool, a list of field names or a selector object.
type PointRequest struct {
	IDs         []PointID `json:"ids"`
	WithPayload any       `json:"with_payload,omitempty"`
	WithVector  any       `json:"with_vector,omitempty"`
}

// PointsSelector selects points either by id or by filter.
type PointsSelector struct {
	Points []PointID `json:"points,omitempty"`
	Filter *Filter   `json:"filter,omitempty"`
}

type SetPayload struct {
	Payload Payload   `json:"payload"`
	Points  []PointID `json:"points,omitempty"`
	Filter  *Filter   `json:"filter,omitempty"`
	Key     string    `json:"key,omitempty"`
}

type DeletePayload struct {
	Keys   []string  `json:"keys"`
	Points []PointID `json:"points,omitempty"`
	Filter *Filter   `json:"filter,omitempty"`
}

type ScrollRequest struct {
	Offset      *PointID `json:"offset,omitempty"`
	Limit       *uint32  `json:"limit,omitempty"`
	Filter      *Filter  `json:"filter,omitempty"`
	WithPayload any      `json:"with_payload,omitempty"`
	WithVector  any      `json:"with_vector,omitempty"`
	OrderBy     any      `json:"order_by,omitempty"`
}

type ScrollResult struct {
	Points         []Record `json:"points"`
	NextPageOffset *PointID `json:"next_page_offset,omitempty"`
}

// SearchRequest searches by a dense vector or a named vector object.
type SearchRequest struct {
	Vector         any            `json:"vector"`
	Filter         *Filter        `json:"filter,omitempty"`
	Params         map[string]any `json:"params,omitempty"`
	Limit          *uint64        `json:"limit,omitempty"`
	Offset         *uint64        `json:"offset,omitempty"`
	WithPayload    any            `json:"with_payload,omitempty"`
	WithVector     any            `json:"with_vector,omitempty"`
	ScoreThreshold *float32       `json:"score_threshold,omitempty"`
}

type SearchRequestBatch struct {
	Searches []SearchRequest `json:"searches"`
}

type ScoredPoint struct {
	ID      PointID `json:"id"`
	Version uint64  `json:"version"`
	Score   float32 `json:"score"`
	Payload Payload `json:"payload,omitempty"`
	Vector  any     `json:"vector,omitempty"`
}

// RecommendRequest recommends by example. Positive and Negative hold point
// ids or raw vectors.
type RecommendRequest struct {
	Positive       []any          `json:"positive,omitempty"`
	Negative       []any          `json:"negative,omitempty"`
	Strategy       string         `json:"strategy,omitempty"`
	Filter         *Filter        `json:"filter,omitempty"`
	Params         map[string]any `json:"params,omitempty"`
	Limit          *uint64        `json:"limit,omitempty"`
	Offset         *uint64        `json:"offset,omitempty"`
	WithPayload    any            `json:"with_payload,omitempty"`
	WithVector     any            `json:"with_vector,omitempty"`
	ScoreThreshold *float32       `json:"score_threshold,omitempty"`
	Using          string         `json:"using,omitempty"`
}

type CountRequest struct {
	Filter *Filter `json:"filter,omitempty"`
	Exact  *bool   `json:"exact,omitempty"`
}

type CountResult struct {
	Count uint64 `json:"count"`
}

// QueryRequest is the universal query. Query holds a vector, a point id or a
// query object such as {"fusion": "rrf"}.
type QueryRequest struct {
	Query          any            `json:"query,omitempty"`
	Prefetch       any            `json:"prefetch,omitempty"`
	Using          string         `json:"using,omitempty"`
	Filter         *Filter        `json:"filter,omitempty"`
	Params         map[string]any `json:"params,omitempty"`
	Limit          *uint64        `json:"limit,omitempty"`
	Offset         *uint64        `json:"offset,omitempty"`
	WithPayload    any            `json:"with_payload,omitempty"`
	WithVector     any            `json:"with_vector,omitempty"`
	ScoreThreshold *float32       `json:"score_threshold,omitempty"`
}

type QueryResponse struct {
	Points []ScoredPoint `json:"points"`
}

// Snapshots

type SnapshotDescription struct {
	Name         string  `json:"name"`
	CreationTime *string `json:"creation_time,omitempty"`
	Size         int64   `json:"size"`
	Checksum     *string `json:"checksum,omitempty"`
}

// SnapshotRecover is the body of a snapshot recovery. Priority is one of
// "replica", "snapshot" or "no_sync".
type SnapshotRecover struct {
	Location string `json:"location"`
	Priority string `json:"priority,omitempty"`
	Checksum string `json:"checksum,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

// Cluster

type PeerInfo struct {
	URI string `json:"uri"`
}

type ClusterStatus struct {
	Status   string              `json:"status"`
	PeerID   uint64              `json:"peer_id,omitempty"`
	Peers    map[string]PeerInfo `json:"peers,omitempty"`
	RaftInfo json.RawMessage     `json:"raft_info,omitempty"`
}

type CollectionClusterInfo struct {
	PeerID       uint64          `json:"peer_id"`
	ShardCount   uint64          `json:"shard_count"`
	LocalShards  json.RawMessage `json:"local_shards,omitempty"`
	RemoteShards json.RawMessage `json:"remote_shards,omitempty"`
}

// Service

// LocksOption describes the storage write lock.
type LocksOption struct {
	Write        bool    `json:"write"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

// envelope is the standard Qdrant response wrapper.
type envelope[T any] struct {
	Result *T              `json:"result"`
	Status json.RawMessage `json:"status,omitempty"`
	Time   float64         `json:"time"`
}
