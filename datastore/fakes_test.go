package datastore

import (
	"context"
	"sync"
	"sync/atomic"

	wire "docstore/api/wire/v1"
	"docstore/entity"
	"docstore/query"
)

type dispatched struct {
	op  string
	req any
}

// fakeTransport records every dispatch and answers from a scripted
// respond func keyed by call number (1-based).
type fakeTransport struct {
	calls   int32
	respond func(n int, op string, req, resp any) error

	mu   sync.Mutex
	seen []dispatched
}

func (f *fakeTransport) Dispatch(_ context.Context, op string, req, resp any) error {
	n := int(atomic.AddInt32(&f.calls, 1))
	f.mu.Lock()
	f.seen = append(f.seen, dispatched{op: op, req: req})
	f.mu.Unlock()
	if f.respond == nil {
		return nil
	}
	return f.respond(n, op, req, resp)
}

func (f *fakeTransport) callCount() int { return int(atomic.LoadInt32(&f.calls)) }

func (f *fakeTransport) request(i int) dispatched {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[i]
}

// fakeCodec maps single-segment keys one to one and decodes found
// results to bare keyed entities.
type fakeCodec struct{}

func (fakeCodec) KeyToProto(k *entity.Key) *wire.Key {
	p := &wire.Key{Path: []*wire.PathElement{{Kind: k.Kind, ID: k.ID, Name: k.Name}}}
	if k.Namespace != "" {
		p.PartitionID = &wire.PartitionID{NamespaceID: k.Namespace}
	}
	return p
}

func (fakeCodec) KeyFromProto(p *wire.Key) (*entity.Key, error) {
	el := p.Path[len(p.Path)-1]
	k := &entity.Key{Kind: el.Kind, ID: el.ID, Name: el.Name}
	if p.PartitionID != nil {
		k.Namespace = p.PartitionID.NamespaceID
	}
	return k, nil
}

func (c fakeCodec) EntityToProto(e *entity.Entity) (*wire.Entity, error) {
	return &wire.Entity{Key: c.KeyToProto(e.Key)}, nil
}

func (c fakeCodec) EntitiesFromProto(rs []*wire.EntityResult) ([]*entity.Entity, error) {
	out := make([]*entity.Entity, 0, len(rs))
	for _, r := range rs {
		k, err := c.KeyFromProto(r.Entity.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, &entity.Entity{Key: k})
	}
	return out, nil
}

// fakeQuery records every mutator call the read engine makes.
type fakeQuery struct {
	limit  int
	offset int
	ns     string

	startCalls  [][]byte
	offsetCalls []int
	limitCalls  []int
}

func (q *fakeQuery) Start(c []byte) query.Builder {
	q.startCalls = append(q.startCalls, c)
	return q
}

func (q *fakeQuery) Offset(n int) query.Builder {
	q.offsetCalls = append(q.offsetCalls, n)
	return q
}

func (q *fakeQuery) Limit(n int) query.Builder {
	q.limitCalls = append(q.limitCalls, n)
	return q
}

func (q *fakeQuery) LimitVal() int        { return q.limit }
func (q *fakeQuery) OffsetVal() int       { return q.offset }
func (q *fakeQuery) Namespace() string    { return q.ns }
func (q *fakeQuery) ToProto() *wire.Query { return &wire.Query{} }

func newTestClient(ft *fakeTransport) *Client {
	return New("proj-1", ft, fakeCodec{})
}

func keyedResult(kind string, id int64) *wire.EntityResult {
	return &wire.EntityResult{Entity: &wire.Entity{Key: &wire.Key{Path: []*wire.PathElement{{Kind: kind, ID: id}}}}}
}
