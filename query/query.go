// Package query carries query continuation state: kind, namespace,
// start cursor, offset and limit. Predicate construction is out of
// scope; the read engine only needs the Builder capability below.
package query

import (
	wire "docstore/api/wire/v1"
)

// Unbounded is the sentinel for a query without a declared limit.
const Unbounded = -1

// Builder is the capability the read engine consumes: fluent
// continuation mutators, read access to the declared limit/offset/
// namespace, and the wire serialization hook.
type Builder interface {
	Start(cursor []byte) Builder
	Offset(n int) Builder
	Limit(n int) Builder
	LimitVal() int
	OffsetVal() int
	Namespace() string
	ToProto() *wire.Query
}

type Query struct {
	kind      string
	namespace string
	start     []byte
	offsetVal int
	limitVal  int
}

// New returns a query over kind with no offset and an unbounded limit.
func New(kind string) *Query {
	return &Query{kind: kind, limitVal: Unbounded}
}

// InNamespace sets the partition namespace the query runs against.
func (q *Query) InNamespace(ns string) *Query {
	q.namespace = ns
	return q
}

// Start sets the cursor the next batch resumes from.
func (q *Query) Start(cursor []byte) Builder {
	q.start = cursor
	return q
}

// Offset sets how many results the server skips before returning any.
func (q *Query) Offset(n int) Builder {
	q.offsetVal = n
	return q
}

// Limit caps the number of results. Unbounded removes the cap.
func (q *Query) Limit(n int) Builder {
	q.limitVal = n
	return q
}

func (q *Query) OffsetVal() int    { return q.offsetVal }
func (q *Query) LimitVal() int     { return q.limitVal }
func (q *Query) Namespace() string { return q.namespace }

// ToProto serializes the current builder state.
func (q *Query) ToProto() *wire.Query {
	p := &wire.Query{
		StartCursor: q.start,
		Offset:      int32(q.offsetVal),
	}
	if q.kind != "" {
		p.Kind = []*wire.KindExpression{{Name: q.kind}}
	}
	if q.limitVal != Unbounded {
		lim := int32(q.limitVal)
		p.Limit = &lim
	}
	return p
}
