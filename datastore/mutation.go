package datastore

import (
	"context"
	"fmt"

	wire "docstore/api/wire/v1"
	"docstore/entity"
)

// Mutation methods accepted by Save.
const (
	MethodInsert = "insert"
	MethodUpdate = "update"
	MethodUpsert = "upsert"
	MethodDelete = "delete"
)

// Record pairs an entity with the mutation method applied on save.
// An empty method means upsert.
type Record struct {
	Entity *entity.Entity
	Method string
}

// Save commits one mutation per record in input order. The caller's
// entities are never modified on the way to wire form; the only write
// back is the id assignment onto each incomplete Key once the server
// has generated one.
func (c *Client) Save(ctx context.Context, recs ...Record) (*wire.CommitResponse, error) {
	if len(recs) == 0 {
		return nil, ErrNoEntities
	}
	muts := make([]*wire.Mutation, 0, len(recs))
	var incomplete []*entity.Key
	for _, r := range recs {
		method := r.Method
		if method == "" {
			method = MethodUpsert
		}
		mut := &wire.Mutation{}
		switch method {
		case MethodDelete:
			mut.Delete = c.codec.KeyToProto(r.Entity.Key)
		case MethodInsert, MethodUpdate, MethodUpsert:
			ep, err := c.codec.EntityToProto(r.Entity)
			if err != nil {
				return nil, err
			}
			switch method {
			case MethodInsert:
				mut.Insert = ep
			case MethodUpdate:
				mut.Update = ep
			case MethodUpsert:
				mut.Upsert = ep
			}
			if r.Entity.Key != nil && r.Entity.Key.Incomplete() {
				incomplete = append(incomplete, r.Entity.Key)
			}
		default:
			return nil, fmt.Errorf("datastore: method %q not recognized", method)
		}
		muts = append(muts, mut)
	}
	hook := func(resp *wire.CommitResponse, err error) {
		if err != nil || resp == nil {
			return
		}
		c.reconcileKeys(incomplete, resp.MutationResults)
	}
	return c.commit(ctx, muts, hook)
}

// Insert is Save with the insert method on every entity.
func (c *Client) Insert(ctx context.Context, ents ...*entity.Entity) (*wire.CommitResponse, error) {
	return c.saveAs(ctx, MethodInsert, ents)
}

// Update is Save with the update method on every entity.
func (c *Client) Update(ctx context.Context, ents ...*entity.Entity) (*wire.CommitResponse, error) {
	return c.saveAs(ctx, MethodUpdate, ents)
}

// Upsert is Save with the upsert method on every entity.
func (c *Client) Upsert(ctx context.Context, ents ...*entity.Entity) (*wire.CommitResponse, error) {
	return c.saveAs(ctx, MethodUpsert, ents)
}

func (c *Client) saveAs(ctx context.Context, method string, ents []*entity.Entity) (*wire.CommitResponse, error) {
	recs := make([]Record, len(ents))
	for i, e := range ents {
		recs[i] = Record{Entity: e, Method: method}
	}
	return c.Save(ctx, recs...)
}

// Delete commits one delete mutation per key.
func (c *Client) Delete(ctx context.Context, keys ...*entity.Key) (*wire.CommitResponse, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	muts := make([]*wire.Mutation, len(keys))
	for i, k := range keys {
		muts[i] = &wire.Mutation{Delete: c.codec.KeyToProto(k)}
	}
	return c.commit(ctx, muts, func(*wire.CommitResponse, error) {})
}

// reconcileKeys assigns server-generated identifiers onto the caller's
// incomplete keys, in input order. Keys that were complete produced no
// result entry, so the two sequences line up one to one.
func (c *Client) reconcileKeys(incomplete []*entity.Key, results []*wire.MutationResult) {
	for i, k := range incomplete {
		if i >= len(results) || results[i] == nil || results[i].Key == nil {
			return
		}
		gen, err := c.codec.KeyFromProto(results[i].Key)
		if err != nil {
			continue
		}
		k.ID = gen.ID
		if gen.Name != "" {
			k.Name = gen.Name
		}
	}
}

// AllocateIDs reserves n identifiers shaped like the given incomplete
// key. A complete key is a usage error, raised before any dispatch.
func (c *Client) AllocateIDs(ctx context.Context, k *entity.Key, n int) ([]*entity.Key, error) {
	if k == nil {
		return nil, ErrNoKeys
	}
	if !k.Incomplete() {
		return nil, ErrCompleteKey
	}
	req := &wire.AllocateIDsRequest{Keys: make([]*wire.Key, n)}
	proto := c.codec.KeyToProto(k)
	for i := range req.Keys {
		req.Keys[i] = proto
	}
	var resp wire.AllocateIDsResponse
	if err := c.Do(ctx, opAllocateIDs, req, &resp); err != nil {
		return nil, err
	}
	keys := make([]*entity.Key, 0, len(resp.Keys))
	for _, kp := range resp.Keys {
		dk, err := c.codec.KeyFromProto(kp)
		if err != nil {
			return nil, err
		}
		keys = append(keys, dk)
	}
	return keys, nil
}
