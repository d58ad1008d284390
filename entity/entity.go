package entity

// Property is one named value on an entity. NoIndex excludes the
// property from indexing; for array values the flag applies to every
// element when encoded.
type Property struct {
	Value   any
	NoIndex bool
}

// Entity is a Key plus its property bag. Entities are caller-owned:
// code that turns them into wire form must copy, never mutate.
type Entity struct {
	Key        *Key
	Properties map[string]Property
}

// New returns an entity for key with an empty property bag.
func New(key *Key) *Entity {
	return &Entity{Key: key, Properties: map[string]Property{}}
}

// Set stores an indexed property value.
func (e *Entity) Set(name string, v any) *Entity {
	e.Properties[name] = Property{Value: v}
	return e
}

// SetNoIndex stores a property excluded from indexes.
func (e *Entity) SetNoIndex(name string, v any) *Entity {
	e.Properties[name] = Property{Value: v, NoIndex: true}
	return e
}
