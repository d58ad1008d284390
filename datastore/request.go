package datastore

import (
	"context"

	wire "docstore/api/wire/v1"
	"docstore/internal/logging"
	"docstore/internal/telemetry"
)

// Operation names understood by the decorator. Anything else passes
// through undecorated.
const (
	opLookup      = "lookup"
	opRunQuery    = "runQuery"
	opCommit      = "commit"
	opRollback    = "rollback"
	opAllocateIDs = "allocateIds"
)

// Do decorates req for the named operation and dispatches it. It is
// the single funnel every round trip goes through; the external
// transaction coordinator uses it to flush commits and rollbacks.
func (c *Client) Do(ctx context.Context, op string, req, resp any) error {
	if err := c.decorate(op, req); err != nil {
		return err
	}
	telemetry.RPCTotal.WithLabelValues(op).Inc()
	if err := c.transport.Dispatch(ctx, op, req, resp); err != nil {
		logging.L().Debug("dispatch failed", "op", op, "err", err)
		return err
	}
	return nil
}

// decorate attaches project identity and transaction context per
// operation kind. A read-consistency option combined with an active
// transaction is a usage error: the two are mutually exclusive.
func (c *Client) decorate(op string, req any) error {
	switch op {
	case opCommit:
		r := req.(*wire.CommitRequest)
		r.ProjectID = c.projectID
		if c.txn != nil && len(c.txn.ID) > 0 {
			r.Mode = wire.ModeTransactional
			r.Transaction = c.txn.ID
		} else {
			r.Mode = wire.ModeNonTransactional
		}
	case opRollback:
		r := req.(*wire.RollbackRequest)
		r.ProjectID = c.projectID
		if c.txn != nil {
			r.Transaction = c.txn.ID
		}
	case opLookup:
		r := req.(*wire.LookupRequest)
		r.ProjectID = c.projectID
		ro, err := c.readOptions(r.ReadOptions)
		if err != nil {
			return err
		}
		r.ReadOptions = ro
	case opRunQuery:
		r := req.(*wire.RunQueryRequest)
		r.ProjectID = c.projectID
		ro, err := c.readOptions(r.ReadOptions)
		if err != nil {
			return err
		}
		r.ReadOptions = ro
	case opAllocateIDs:
		r := req.(*wire.AllocateIDsRequest)
		r.ProjectID = c.projectID
	}
	return nil
}

func (c *Client) readOptions(ro *wire.ReadOptions) (*wire.ReadOptions, error) {
	if c.txn == nil || len(c.txn.ID) == 0 {
		return ro, nil
	}
	if ro != nil && ro.ReadConsistency != 0 {
		return nil, ErrConsistencyInTxn
	}
	if ro == nil {
		ro = &wire.ReadOptions{}
	}
	ro.Transaction = c.txn.ID
	return ro, nil
}

// commit funnels a batch of mutations either onto the wire or, while a
// transaction queue is armed, into that queue. hook runs once the
// commit response (or its error) is known; while queuing that happens
// only when the coordinator flushes.
func (c *Client) commit(ctx context.Context, muts []*wire.Mutation, hook CommitHook) (*wire.CommitResponse, error) {
	if c.txn.queuing() {
		c.txn.Log.Append(muts, hook)
		telemetry.QueuedMutations.Add(float64(len(muts)))
		return nil, nil
	}
	req := &wire.CommitRequest{Mutations: muts}
	var resp wire.CommitResponse
	if err := c.Do(ctx, opCommit, req, &resp); err != nil {
		if hook != nil {
			hook(nil, err)
		}
		return nil, err
	}
	if hook != nil {
		hook(&resp, nil)
	}
	if c.observer != nil {
		c.observer.ObserveCommit(req, &resp)
	}
	return &resp, nil
}
