// Package wire defines the JSON wire messages exchanged with the
// datastore service. Field shapes and enumerant spellings follow the
// upstream protocol; the core builds these, the codec fills them.
package wire

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Read-consistency codes attached under ReadOptions.
const (
	ReadConsistencyStrong   int32 = 1
	ReadConsistencyEventual int32 = 2
)

// Commit modes.
const (
	ModeTransactional    = "TRANSACTIONAL"
	ModeNonTransactional = "NON_TRANSACTIONAL"
)

// MoreResults enumerants. NOT_FINISHED is the only value that drives a
// continuation round trip; everything else is terminal.
const (
	MoreResultsNotFinished = "NOT_FINISHED"
	MoreResultsAfterLimit  = "MORE_RESULTS_AFTER_LIMIT"
	MoreResultsNone        = "NO_MORE_RESULTS"
)

type PartitionID struct {
	NamespaceID string `json:"namespaceId,omitempty"`
}

type PathElement struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Key struct {
	PartitionID *PartitionID   `json:"partitionId,omitempty"`
	Path        []*PathElement `json:"path"`
}

// Value carries one property value. Scalars ride in a structpb.Value;
// keys and arrays get dedicated fields so per-element index exclusion
// survives the trip.
type Value struct {
	ExcludeFromIndexes bool            `json:"excludeFromIndexes,omitempty"`
	KeyValue           *Key            `json:"keyValue,omitempty"`
	ArrayValue         []*Value        `json:"arrayValue,omitempty"`
	Scalar             *structpb.Value `json:"scalar,omitempty"`
}

type Entity struct {
	Key        *Key              `json:"key,omitempty"`
	Properties map[string]*Value `json:"properties,omitempty"`
}

type EntityResult struct {
	Entity  *Entity `json:"entity"`
	Version int64   `json:"version,omitempty"`
	Cursor  []byte  `json:"cursor,omitempty"`
}

// Mutation holds exactly one of the four operation fields.
type Mutation struct {
	Insert *Entity `json:"insert,omitempty"`
	Update *Entity `json:"update,omitempty"`
	Upsert *Entity `json:"upsert,omitempty"`
	Delete *Key    `json:"delete,omitempty"`
}

type MutationResult struct {
	Key     *Key  `json:"key,omitempty"`
	Version int64 `json:"version,omitempty"`
}

type ReadOptions struct {
	ReadConsistency int32  `json:"readConsistency,omitempty"`
	Transaction     []byte `json:"transaction,omitempty"`
}

type LookupRequest struct {
	ProjectID   string       `json:"projectId,omitempty"`
	ReadOptions *ReadOptions `json:"readOptions,omitempty"`
	Keys        []*Key       `json:"keys"`
}

type LookupResponse struct {
	Found    []*EntityResult `json:"found,omitempty"`
	Missing  []*EntityResult `json:"missing,omitempty"`
	Deferred []*Key          `json:"deferred,omitempty"`
}

// Query is the serialized form a query builder produces. Predicate
// construction lives with the builder; only the continuation-relevant
// fields matter here.
type Query struct {
	Kind        []*KindExpression `json:"kind,omitempty"`
	StartCursor []byte            `json:"startCursor,omitempty"`
	Offset      int32             `json:"offset,omitempty"`
	Limit       *int32            `json:"limit,omitempty"`
}

type KindExpression struct {
	Name string `json:"name"`
}

type RunQueryRequest struct {
	ProjectID   string       `json:"projectId,omitempty"`
	PartitionID *PartitionID `json:"partitionId,omitempty"`
	ReadOptions *ReadOptions `json:"readOptions,omitempty"`
	Query       *Query       `json:"query"`
}

type QueryResultBatch struct {
	EntityResults  []*EntityResult `json:"entityResults,omitempty"`
	EndCursor      []byte          `json:"endCursor,omitempty"`
	MoreResults    string          `json:"moreResults"`
	SkippedResults int32           `json:"skippedResults,omitempty"`
}

type RunQueryResponse struct {
	Batch *QueryResultBatch `json:"batch"`
}

type CommitRequest struct {
	ProjectID   string      `json:"projectId,omitempty"`
	Mode        string      `json:"mode"`
	Transaction []byte      `json:"transaction,omitempty"`
	Mutations   []*Mutation `json:"mutations"`
}

type CommitResponse struct {
	MutationResults []*MutationResult `json:"mutationResults,omitempty"`
	IndexUpdates    int32             `json:"indexUpdates,omitempty"`
}

type AllocateIDsRequest struct {
	ProjectID string `json:"projectId,omitempty"`
	Keys      []*Key `json:"keys"`
}

type AllocateIDsResponse struct {
	Keys []*Key `json:"keys"`
}

type RollbackRequest struct {
	ProjectID   string `json:"projectId,omitempty"`
	Transaction []byte `json:"transaction"`
}

type RollbackResponse struct{}
