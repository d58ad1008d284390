package datastore

import (
	"context"
	"errors"
	"sync"

	"docstore/entity"
	"docstore/query"
)

// Done is returned by Stream.Next once all results are delivered.
var Done = errors.New("datastore: no more results")

// Stream is the streaming delivery mode of the read engine: a bounded
// hand-off between the continuation loop and the consumer. The first
// round trip is issued only once the consumer asks for a result, one
// round trip is in flight at a time, and Stop guarantees no further
// round trips.
type Stream struct {
	ctx  context.Context
	page pageFn

	items chan streamItem
	stop  chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once

	mu   sync.Mutex
	info *QueryInfo
}

type streamItem struct {
	ent *entity.Entity
	err error
}

func newStream(ctx context.Context, page pageFn) *Stream {
	return &Stream{
		ctx:   ctx,
		page:  page,
		items: make(chan streamItem),
		stop:  make(chan struct{}),
	}
}

// GetStream is Get/GetMulti in streaming mode.
func (c *Client) GetStream(ctx context.Context, keys []*entity.Key, opts *ReadOptions) (*Stream, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	return newStream(ctx, c.lookupPages(keys, opts)), nil
}

// RunStream is RunQuery in streaming mode; Info exposes the query's
// side channel, refreshed on every round trip.
func (c *Client) RunStream(ctx context.Context, q query.Builder, opts *ReadOptions) *Stream {
	return newStream(ctx, c.queryPages(q, opts))
}

// Next blocks for the next entity. It returns Done after the final
// result, or the transport error that aborted the stream. The first
// call starts the engine.
func (s *Stream) Next() (*entity.Entity, error) {
	s.startOnce.Do(func() { go s.run() })
	it, ok := <-s.items
	if !ok {
		return nil, Done
	}
	if it.err != nil {
		return nil, it.err
	}
	return it.ent, nil
}

// Stop ends the consumer's interest. A round trip already in flight
// may complete; its results are discarded and no further round trips
// are issued.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Info returns the most recent round trip's query info, or nil before
// the first response (and always nil for lookups).
func (s *Stream) Info() *QueryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

func (s *Stream) run() {
	defer close(s.items)
	for {
		if s.stopped() {
			return
		}
		ents, info, done, err := s.page(s.ctx)
		if err != nil {
			s.deliver(streamItem{err: err})
			return
		}
		if info != nil {
			s.mu.Lock()
			s.info = info
			s.mu.Unlock()
		}
		for _, e := range ents {
			if !s.deliver(streamItem{ent: e}) {
				return
			}
		}
		if done || s.stopped() {
			return
		}
	}
}

func (s *Stream) deliver(it streamItem) bool {
	select {
	case s.items <- it:
		return true
	case <-s.stop:
		return false
	}
}

func (s *Stream) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}
