package publish

import (
	"fmt"

	wire "docstore/api/wire/v1"
)

// Event is one committed mutation batch, as seen by publish drivers.
type Event struct {
	ProjectID    string           `json:"projectId"`
	Mode         string           `json:"mode"`
	Mutations    []*wire.Mutation `json:"mutations"`
	IndexUpdates int32            `json:"indexUpdates,omitempty"`
}

// Adapter is the common behaviour every publish driver exposes.
type Adapter interface {
	Configure(any) error // driver-specific YAML ⇒ struct
	Publish(*Event) error
	Close() error // idempotent
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown publisher %q", name)
}

/*──────── commit observer bridge ───────*/

// Fan forwards each observed commit to every attached adapter. It
// satisfies the client's CommitObserver capability.
type Fan struct {
	adapters []Adapter
}

func NewFan(adapters ...Adapter) *Fan { return &Fan{adapters: adapters} }

func (f *Fan) ObserveCommit(req *wire.CommitRequest, resp *wire.CommitResponse) {
	ev := &Event{
		ProjectID: req.ProjectID,
		Mode:      req.Mode,
		Mutations: req.Mutations,
	}
	if resp != nil {
		ev.IndexUpdates = resp.IndexUpdates
	}
	for _, a := range f.adapters {
		_ = a.Publish(ev)
	}
}

func (f *Fan) Close() error {
	for _, a := range f.adapters {
		_ = a.Close()
	}
	return nil
}
