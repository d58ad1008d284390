package datastore

import (
	"context"
	"errors"

	wire "docstore/api/wire/v1"
	"docstore/entity"
	"docstore/internal/logging"
	"docstore/internal/telemetry"
	"docstore/query"
)

// QueryInfo is the per-round-trip side channel of a query: where the
// batch ended and whether the server considers the query finished.
type QueryInfo struct {
	EndCursor   []byte
	MoreResults string
}

// pageFn performs one transport round trip and reports whether the
// logical operation still needs another. The closure owns all
// continuation state, so round trips are strictly sequential.
type pageFn func(ctx context.Context) (ents []*entity.Entity, info *QueryInfo, done bool, err error)

// lookupPages drives a key lookup. Deferred keys returned by one round
// trip become the request of the next; each response's deferred set
// replaces the previous one outright.
func (c *Client) lookupPages(keys []*entity.Key, opts *ReadOptions) pageFn {
	pending := make([]*wire.Key, len(keys))
	for i, k := range keys {
		pending[i] = c.codec.KeyToProto(k)
	}
	return func(ctx context.Context) ([]*entity.Entity, *QueryInfo, bool, error) {
		req := &wire.LookupRequest{Keys: pending}
		if code := consistencyCode(opts.consistency()); code != 0 {
			req.ReadOptions = &wire.ReadOptions{ReadConsistency: code}
		}
		var resp wire.LookupResponse
		if err := c.Do(ctx, opLookup, req, &resp); err != nil {
			return nil, nil, false, err
		}
		telemetry.RoundTrips.WithLabelValues(opLookup).Inc()
		ents, err := c.codec.EntitiesFromProto(resp.Found)
		if err != nil {
			return nil, nil, false, err
		}
		pending = resp.Deferred
		if len(pending) > 0 {
			logging.L().Debug("lookup deferred", "keys", len(pending))
		}
		return ents, nil, len(pending) == 0, nil
	}
}

// queryPages drives a query. Until the server reports anything other
// than NOT_FINISHED, the builder is rewound for the next round trip:
// start cursor from the batch, offset until fully consumed, and the
// remaining limit only when the query declared one.
func (c *Client) queryPages(q query.Builder, opts *ReadOptions) pageFn {
	origLimit := q.LimitVal()
	origOffset := q.OffsetVal()
	resultsSoFar := 0
	skippedSoFar := 0
	offsetDone := origOffset <= 0
	return func(ctx context.Context) ([]*entity.Entity, *QueryInfo, bool, error) {
		req := &wire.RunQueryRequest{Query: q.ToProto()}
		if ns := q.Namespace(); ns != "" {
			req.PartitionID = &wire.PartitionID{NamespaceID: ns}
		}
		if code := consistencyCode(opts.consistency()); code != 0 {
			req.ReadOptions = &wire.ReadOptions{ReadConsistency: code}
		}
		var resp wire.RunQueryResponse
		if err := c.Do(ctx, opRunQuery, req, &resp); err != nil {
			return nil, nil, false, err
		}
		telemetry.RoundTrips.WithLabelValues(opRunQuery).Inc()
		batch := resp.Batch
		if batch == nil {
			return nil, nil, false, errors.New("datastore: query response carried no batch")
		}
		ents, err := c.codec.EntitiesFromProto(batch.EntityResults)
		if err != nil {
			return nil, nil, false, err
		}
		resultsSoFar += len(batch.EntityResults)
		skippedSoFar += int(batch.SkippedResults)
		info := &QueryInfo{EndCursor: batch.EndCursor, MoreResults: batch.MoreResults}
		if batch.MoreResults != wire.MoreResultsNotFinished {
			return ents, info, true, nil
		}
		q.Start(batch.EndCursor)
		if !offsetDone {
			rem := origOffset - skippedSoFar
			if rem < 0 {
				rem = 0
			}
			q.Offset(rem)
			offsetDone = rem == 0
		}
		if origLimit != query.Unbounded {
			q.Limit(origLimit - resultsSoFar)
		}
		return ents, info, false, nil
	}
}

// Get looks up a single key. A missing entity yields (nil, nil).
func (c *Client) Get(ctx context.Context, key *entity.Key, opts *ReadOptions) (*entity.Entity, error) {
	if key == nil {
		return nil, ErrNoKeys
	}
	ents, err := c.GetMulti(ctx, []*entity.Key{key}, opts)
	if err != nil {
		return nil, err
	}
	if len(ents) == 0 {
		return nil, nil
	}
	return ents[0], nil
}

// GetMulti looks up several keys, following deferred keys until the
// server has answered for all of them. Found entities come back in no
// guaranteed order.
func (c *Client) GetMulti(ctx context.Context, keys []*entity.Key, opts *ReadOptions) ([]*entity.Entity, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	page := c.lookupPages(keys, opts)
	var out []*entity.Entity
	for {
		ents, _, done, err := page(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, ents...)
		if done {
			return out, nil
		}
	}
}

// RunQuery executes q to completion and returns the full result
// sequence plus the final round trip's info.
func (c *Client) RunQuery(ctx context.Context, q query.Builder, opts *ReadOptions) ([]*entity.Entity, *QueryInfo, error) {
	page := c.queryPages(q, opts)
	var out []*entity.Entity
	var info *QueryInfo
	for {
		ents, in, done, err := page(ctx)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, ents...)
		info = in
		if done {
			return out, info, nil
		}
	}
}

func (o *ReadOptions) consistency() string {
	if o == nil {
		return ""
	}
	return o.Consistency
}
