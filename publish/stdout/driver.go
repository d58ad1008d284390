package stdout

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"docstore/publish"
)

/* ────────── public YAML config ────────── */
type Config struct {
	PrintCounter  bool `yaml:"print_counter"`   // prepend seq#
	ValueMaxBytes int  `yaml:"value_max_bytes"` // 0 = unlimited
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config
}

var seq uint64

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-publish: expected Config, got %T", raw)
	}
	d.cfg = c
	return nil
}

func (d *driver) Publish(ev *publish.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if d.cfg.ValueMaxBytes > 0 && len(raw) > d.cfg.ValueMaxBytes {
		raw = raw[:d.cfg.ValueMaxBytes]
	}
	if d.cfg.PrintCounter {
		fmt.Printf("[publish %06d] %s\n", atomic.AddUint64(&seq, 1), raw)
		return nil
	}
	fmt.Printf("%s\n", raw)
	return nil
}

func (d *driver) Close() error { return nil }

func init() { publish.Register("stdout", func() publish.Adapter { return &driver{} }) }
