// Package datastore is the request/transaction core of the document
// client: it turns entity and query operations into wire requests,
// drives lookup/query continuation until a logical operation is truly
// complete, and diverts mutations into a pending queue while a
// transaction is active.
package datastore

import (
	"context"
	"errors"

	wire "docstore/api/wire/v1"
	"docstore/entity"
)

// Usage errors, raised before any request is dispatched.
var (
	ErrNoKeys           = errors.New("datastore: at least one key is required")
	ErrNoEntities       = errors.New("datastore: at least one entity is required")
	ErrCompleteKey      = errors.New("datastore: id allocation requires an incomplete key")
	ErrConsistencyInTxn = errors.New("datastore: read consistency cannot be combined with a transaction")
)

// Transport sends one request for a named operation and fills resp.
// Authentication, connection management and retry live below this
// boundary.
type Transport interface {
	Dispatch(ctx context.Context, op string, req, resp any) error
}

// Codec converts keys and entities to and from wire form.
type Codec interface {
	KeyToProto(*entity.Key) *wire.Key
	KeyFromProto(*wire.Key) (*entity.Key, error)
	EntityToProto(*entity.Entity) (*wire.Entity, error)
	EntitiesFromProto([]*wire.EntityResult) ([]*entity.Entity, error)
}

// CommitObserver is notified after every commit the client dispatched
// itself (queued transactional mutations are flushed by the external
// coordinator and bypass it).
type CommitObserver interface {
	ObserveCommit(req *wire.CommitRequest, resp *wire.CommitResponse)
}

// ReadOptions tune a single read operation.
type ReadOptions struct {
	// Consistency is "strong" or "eventual"; empty leaves the server
	// default in place. Unknown values are ignored.
	Consistency string
}

type Client struct {
	projectID string
	transport Transport
	codec     Codec
	observer  CommitObserver

	// txn is bound and cleared by the external transaction
	// coordinator; this core only reads it per request and appends to
	// its queue.
	txn *Txn
}

type Option func(*Client)

// WithObserver attaches a commit observer (e.g. a publish driver).
func WithObserver(o CommitObserver) Option {
	return func(c *Client) { c.observer = o }
}

// New builds a client over an injected transport and codec.
func New(projectID string, t Transport, cd Codec, opts ...Option) *Client {
	c := &Client{projectID: projectID, transport: t, codec: cd}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BindTxn installs the transaction context supplied by the external
// coordinator. Pass nil to detach.
func (c *Client) BindTxn(t *Txn) { c.txn = t }

func consistencyCode(s string) int32 {
	switch s {
	case "strong":
		return wire.ReadConsistencyStrong
	case "eventual":
		return wire.ReadConsistencyEventual
	default:
		return 0
	}
}
