package datastore

import (
	"context"
	"testing"

	wire "docstore/api/wire/v1"
	"docstore/entity"
)

func TestSave_QueuedWhileTxnArmed(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(ft)
	log := &MutationLog{}
	c.BindTxn(&Txn{ID: []byte("txn-1"), Log: log})

	resp, err := c.Save(context.Background(),
		Record{Entity: entity.New(entity.NewKey("Task", "a", nil))},
		Record{Entity: entity.New(entity.NewKey("Task", "b", nil)), Method: MethodDelete},
	)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if resp != nil {
		t.Fatalf("resp = %+v, want nil while queuing", resp)
	}
	if ft.callCount() != 0 {
		t.Fatalf("%d dispatches, want 0", ft.callCount())
	}
	if len(log.Mutations) != 2 {
		t.Fatalf("%d queued mutations, want 2", len(log.Mutations))
	}
	if log.Mutations[0].Upsert == nil || log.Mutations[1].Delete == nil {
		t.Fatalf("queued mutations out of order: %+v", log.Mutations)
	}
	if len(log.Hooks) != 1 {
		t.Fatalf("%d hooks, want 1 per originating call", len(log.Hooks))
	}
}

func TestDelete_QueuedWhileTxnArmed(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(ft)
	log := &MutationLog{}
	c.BindTxn(&Txn{ID: []byte("txn-1"), Log: log})

	if _, err := c.Delete(context.Background(), entity.NewIDKey("Task", 4, nil)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ft.callCount() != 0 {
		t.Fatalf("%d dispatches, want 0", ft.callCount())
	}
	if len(log.Mutations) != 1 || log.Mutations[0].Delete == nil {
		t.Fatalf("queued = %+v", log.Mutations)
	}
}

func TestQueuedHook_ReconcilesKeysOnFlush(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(ft)
	log := &MutationLog{}
	c.BindTxn(&Txn{ID: []byte("txn-1"), Log: log})

	k := entity.NewKey("Task", "", nil)
	if _, err := c.Save(context.Background(), Record{Entity: entity.New(k)}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !k.Incomplete() {
		t.Fatal("key must stay incomplete until the coordinator flushes")
	}

	muts, hooks := log.Drain()
	if len(muts) != 1 || len(hooks) != 1 {
		t.Fatalf("drained %d mutations, %d hooks", len(muts), len(hooks))
	}
	if len(log.Mutations) != 0 || len(log.Hooks) != 0 {
		t.Fatal("queue not reset after drain")
	}
	hooks[0](&wire.CommitResponse{MutationResults: []*wire.MutationResult{
		{Key: &wire.Key{Path: []*wire.PathElement{{Kind: "Task", ID: 321}}}},
	}}, nil)
	if k.ID != 321 {
		t.Fatalf("id = %d, want 321 after flush", k.ID)
	}
}

func TestTxn_WithoutArmedQueueCommitsTransactional(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(ft)
	c.BindTxn(&Txn{ID: []byte("txn-2")})

	if _, err := c.Delete(context.Background(), entity.NewIDKey("Task", 4, nil)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ft.callCount() != 1 {
		t.Fatalf("%d dispatches, want 1", ft.callCount())
	}
	req := ft.request(0).req.(*wire.CommitRequest)
	if req.Mode != wire.ModeTransactional || string(req.Transaction) != "txn-2" {
		t.Fatalf("commit = %+v", req)
	}
}

func TestTxn_ReadsStillDispatchWithTxnContext(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(ft)
	c.BindTxn(&Txn{ID: []byte("txn-5"), Log: &MutationLog{}})

	if _, err := c.GetMulti(context.Background(), []*entity.Key{entity.NewIDKey("Task", 1, nil)}, nil); err != nil {
		t.Fatalf("GetMulti: %v", err)
	}
	if ft.callCount() != 1 {
		t.Fatalf("%d dispatches, want 1", ft.callCount())
	}
	req := ft.request(0).req.(*wire.LookupRequest)
	if req.ReadOptions == nil || string(req.ReadOptions.Transaction) != "txn-5" {
		t.Fatalf("readOptions = %+v", req.ReadOptions)
	}
}
