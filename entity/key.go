// Package entity holds the caller-facing data model: structured keys
// and keyed property bags. Wire conversion lives elsewhere.
package entity

import "fmt"

// Key identifies an entity: an ancestor chain of (kind, id-or-name)
// segments plus an optional namespace. A key whose final segment has
// neither an ID nor a Name is incomplete and awaits server assignment.
type Key struct {
	Kind      string
	ID        int64
	Name      string
	Namespace string
	Parent    *Key
}

// NewKey returns a named or incomplete key for kind. Pass name "" for
// an incomplete key.
func NewKey(kind, name string, parent *Key) *Key {
	return &Key{Kind: kind, Name: name, Parent: parent}
}

// NewIDKey returns a key with a numeric identifier.
func NewIDKey(kind string, id int64, parent *Key) *Key {
	return &Key{Kind: kind, ID: id, Parent: parent}
}

// Incomplete reports whether the final segment still lacks an id/name.
func (k *Key) Incomplete() bool {
	return k.ID == 0 && k.Name == ""
}

// Equal reports structural identity: same namespace and same
// (kind, id-or-name) path.
func (k *Key) Equal(o *Key) bool {
	for {
		if k == nil || o == nil {
			return k == o
		}
		if k.Kind != o.Kind || k.ID != o.ID || k.Name != o.Name || k.Namespace != o.Namespace {
			return false
		}
		k, o = k.Parent, o.Parent
	}
}

func (k *Key) String() string {
	if k == nil {
		return ""
	}
	var id string
	switch {
	case k.Name != "":
		id = k.Name
	case k.ID != 0:
		id = fmt.Sprint(k.ID)
	default:
		id = "?"
	}
	return k.Parent.String() + "/" + k.Kind + "," + id
}
