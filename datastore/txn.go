package datastore

import (
	"sync"

	wire "docstore/api/wire/v1"
)

// CommitHook observes the commit outcome for one Save/Delete call.
// While a transaction queue is armed the hook fires only when the
// external coordinator flushes the queue.
type CommitHook func(resp *wire.CommitResponse, err error)

// Txn is the transaction context owned by the external coordinator.
// The core never begins, commits or rolls back a transaction; it only
// stamps the identifier onto requests and, once Log is armed, diverts
// mutations into it.
type Txn struct {
	// ID is the opaque transaction identifier.
	ID []byte
	// Log, when non-nil, switches Save/Delete into queuing mode.
	Log *MutationLog
}

// MutationLog is the ordered pending-mutation queue plus the parallel
// queue of completion hooks, one hook per originating call.
type MutationLog struct {
	mu        sync.Mutex
	Mutations []*wire.Mutation
	Hooks     []CommitHook
}

// Append records one call's mutations and its completion hook.
func (l *MutationLog) Append(muts []*wire.Mutation, hook CommitHook) {
	l.mu.Lock()
	l.Mutations = append(l.Mutations, muts...)
	l.Hooks = append(l.Hooks, hook)
	l.mu.Unlock()
}

// Drain hands the queued mutations and hooks to the coordinator and
// resets the queue.
func (l *MutationLog) Drain() ([]*wire.Mutation, []CommitHook) {
	l.mu.Lock()
	muts, hooks := l.Mutations, l.Hooks
	l.Mutations, l.Hooks = nil, nil
	l.mu.Unlock()
	return muts, hooks
}

func (t *Txn) queuing() bool {
	return t != nil && len(t.ID) > 0 && t.Log != nil
}
