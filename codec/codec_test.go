package codec

import (
	"reflect"
	"testing"

	wire "docstore/api/wire/v1"
	"docstore/entity"
)

func TestKeyRoundTrip(t *testing.T) {
	c := New()
	parent := entity.NewKey("List", "groceries", nil)
	k := entity.NewIDKey("Task", 42, parent)
	k.Namespace = "staging"

	p := c.KeyToProto(k)
	if len(p.Path) != 2 || p.Path[0].Kind != "List" || p.Path[1].ID != 42 {
		t.Fatalf("path = %+v", p.Path)
	}
	if p.PartitionID == nil || p.PartitionID.NamespaceID != "staging" {
		t.Fatalf("partition = %+v", p.PartitionID)
	}

	back, err := c.KeyFromProto(p)
	if err != nil {
		t.Fatalf("KeyFromProto: %v", err)
	}
	if !back.Equal(&entity.Key{Kind: "Task", ID: 42, Namespace: "staging", Parent: &entity.Key{Kind: "List", Name: "groceries"}}) {
		t.Fatalf("round trip = %v", back)
	}
}

func TestKeyFromProto_EmptyPath(t *testing.T) {
	if _, err := New().KeyFromProto(&wire.Key{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestEntityRoundTrip(t *testing.T) {
	c := New()
	e := entity.New(entity.NewIDKey("Task", 7, nil)).
		Set("title", "write tests").
		Set("done", false).
		Set("hours", 2.5)

	p, err := c.EntityToProto(e)
	if err != nil {
		t.Fatalf("EntityToProto: %v", err)
	}
	back, err := c.EntitiesFromProto([]*wire.EntityResult{{Entity: p}})
	if err != nil {
		t.Fatalf("EntitiesFromProto: %v", err)
	}
	if len(back) != 1 {
		t.Fatalf("got %d entities", len(back))
	}
	got := back[0]
	if !got.Key.Equal(e.Key) {
		t.Fatalf("key = %v", got.Key)
	}
	want := map[string]entity.Property{
		"title": {Value: "write tests"},
		"done":  {Value: false},
		"hours": {Value: 2.5},
	}
	if !reflect.DeepEqual(got.Properties, want) {
		t.Fatalf("properties = %#v", got.Properties)
	}
}

func TestEntityToProto_ArrayNoIndexPropagates(t *testing.T) {
	c := New()
	e := entity.New(entity.NewIDKey("Task", 1, nil)).
		SetNoIndex("tags", []any{"a", "b", "c"})

	p, err := c.EntityToProto(e)
	if err != nil {
		t.Fatalf("EntityToProto: %v", err)
	}
	arr := p.Properties["tags"].ArrayValue
	if len(arr) != 3 {
		t.Fatalf("array = %+v", arr)
	}
	for i, el := range arr {
		if !el.ExcludeFromIndexes {
			t.Fatalf("element %d not excluded from indexes", i)
		}
	}
}

func TestEntityToProto_KeyValuedProperty(t *testing.T) {
	c := New()
	ref := entity.NewIDKey("List", 5, nil)
	e := entity.New(entity.NewIDKey("Task", 1, nil)).Set("list", ref)

	p, err := c.EntityToProto(e)
	if err != nil {
		t.Fatalf("EntityToProto: %v", err)
	}
	kv := p.Properties["list"].KeyValue
	if kv == nil || kv.Path[0].ID != 5 {
		t.Fatalf("keyValue = %+v", kv)
	}

	back, err := c.EntitiesFromProto([]*wire.EntityResult{{Entity: p}})
	if err != nil {
		t.Fatalf("EntitiesFromProto: %v", err)
	}
	got, ok := back[0].Properties["list"].Value.(*entity.Key)
	if !ok || !got.Equal(ref) {
		t.Fatalf("decoded list = %#v", back[0].Properties["list"].Value)
	}
}

func TestEntityToProto_DoesNotTouchInput(t *testing.T) {
	c := New()
	e := entity.New(entity.NewIDKey("Task", 1, nil)).Set("n", int64(41))
	if _, err := c.EntityToProto(e); err != nil {
		t.Fatalf("EntityToProto: %v", err)
	}
	if e.Properties["n"].Value != int64(41) {
		t.Fatalf("input property changed: %#v", e.Properties["n"])
	}
}
