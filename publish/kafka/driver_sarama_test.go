package kafka

import (
	"encoding/json"
	"testing"

	"github.com/IBM/sarama/mocks"

	wire "docstore/api/wire/v1"
	"docstore/publish"
)

func TestDriver_PublishEncodesEvent(t *testing.T) {
	mp := mocks.NewAsyncProducer(t, nil)
	mp.ExpectInputWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev publish.Event
		return json.Unmarshal(val, &ev)
	})

	d := &driver{cfg: Config{Topic: "commits"}, p: mp}
	ev := &publish.Event{
		ProjectID: "proj-1",
		Mode:      wire.ModeNonTransactional,
		Mutations: []*wire.Mutation{{Delete: &wire.Key{Path: []*wire.PathElement{{Kind: "Task", ID: 1}}}}},
	}
	if err := d.Publish(ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestDriver_ConfigureRejectsWrongType(t *testing.T) {
	d := &driver{}
	if err := d.Configure(42); err == nil {
		t.Fatal("expected config type error")
	}
}
