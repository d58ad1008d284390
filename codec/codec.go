// Package codec is the reference wire codec: entity keys and property
// bags to and from their api/wire/v1 form. The request core consumes
// only the capability interface it declares; this package provides the
// stock implementation.
package codec

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	wire "docstore/api/wire/v1"
	"docstore/entity"
)

type Codec struct{}

func New() Codec { return Codec{} }

// KeyToProto flattens the ancestor chain into a wire path, root first.
func (Codec) KeyToProto(k *entity.Key) *wire.Key {
	var path []*wire.PathElement
	ns := ""
	for cur := k; cur != nil; cur = cur.Parent {
		path = append([]*wire.PathElement{{Kind: cur.Kind, ID: cur.ID, Name: cur.Name}}, path...)
		if cur.Namespace != "" {
			ns = cur.Namespace
		}
	}
	p := &wire.Key{Path: path}
	if ns != "" {
		p.PartitionID = &wire.PartitionID{NamespaceID: ns}
	}
	return p
}

func (Codec) KeyFromProto(p *wire.Key) (*entity.Key, error) {
	if p == nil || len(p.Path) == 0 {
		return nil, fmt.Errorf("codec: key proto has empty path")
	}
	var k *entity.Key
	for _, el := range p.Path {
		k = &entity.Key{Kind: el.Kind, ID: el.ID, Name: el.Name, Parent: k}
	}
	if p.PartitionID != nil {
		k.Namespace = p.PartitionID.NamespaceID
	}
	return k, nil
}

// EntityToProto builds a fresh wire entity; the caller's entity is
// never touched. A NoIndex flag on an array-valued property is stamped
// onto every element.
func (c Codec) EntityToProto(e *entity.Entity) (*wire.Entity, error) {
	p := &wire.Entity{Properties: map[string]*wire.Value{}}
	if e.Key != nil {
		p.Key = c.KeyToProto(e.Key)
	}
	for name, prop := range e.Properties {
		v, err := valueToProto(prop.Value, prop.NoIndex)
		if err != nil {
			return nil, fmt.Errorf("codec: property %q: %w", name, err)
		}
		p.Properties[name] = v
	}
	return p, nil
}

func valueToProto(v any, noIndex bool) (*wire.Value, error) {
	switch t := v.(type) {
	case *entity.Key:
		return &wire.Value{KeyValue: (Codec{}).KeyToProto(t), ExcludeFromIndexes: noIndex}, nil
	case []any:
		arr := make([]*wire.Value, 0, len(t))
		for _, el := range t {
			ev, err := valueToProto(el, noIndex)
			if err != nil {
				return nil, err
			}
			arr = append(arr, ev)
		}
		return &wire.Value{ArrayValue: arr}, nil
	default:
		sv, err := structpb.NewValue(v)
		if err != nil {
			return nil, err
		}
		return &wire.Value{Scalar: sv, ExcludeFromIndexes: noIndex}, nil
	}
}

// EntitiesFromProto decodes a batch of found results in order.
func (c Codec) EntitiesFromProto(results []*wire.EntityResult) ([]*entity.Entity, error) {
	out := make([]*entity.Entity, 0, len(results))
	for _, r := range results {
		if r == nil || r.Entity == nil {
			continue
		}
		e, err := c.entityFromProto(r.Entity)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (c Codec) entityFromProto(p *wire.Entity) (*entity.Entity, error) {
	e := &entity.Entity{Properties: map[string]entity.Property{}}
	if p.Key != nil {
		k, err := c.KeyFromProto(p.Key)
		if err != nil {
			return nil, err
		}
		e.Key = k
	}
	for name, v := range p.Properties {
		val, noIndex, err := valueFromProto(v)
		if err != nil {
			return nil, fmt.Errorf("codec: property %q: %w", name, err)
		}
		e.Properties[name] = entity.Property{Value: val, NoIndex: noIndex}
	}
	return e, nil
}

func valueFromProto(v *wire.Value) (any, bool, error) {
	switch {
	case v == nil:
		return nil, false, nil
	case v.KeyValue != nil:
		k, err := (Codec{}).KeyFromProto(v.KeyValue)
		return k, v.ExcludeFromIndexes, err
	case v.ArrayValue != nil:
		arr := make([]any, 0, len(v.ArrayValue))
		noIndex := false
		for _, el := range v.ArrayValue {
			ev, ni, err := valueFromProto(el)
			if err != nil {
				return nil, false, err
			}
			noIndex = noIndex || ni
			arr = append(arr, ev)
		}
		return arr, noIndex, nil
	case v.Scalar != nil:
		return v.Scalar.AsInterface(), v.ExcludeFromIndexes, nil
	default:
		return nil, v.ExcludeFromIndexes, nil
	}
}
