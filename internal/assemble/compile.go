// Package assemble turns a parsed profile into wired publish drivers.
package assemble

import (
	"fmt"

	"docstore/internal/spec"
	"docstore/publish"
	"docstore/publish/kafka"
	"docstore/publish/stdout"
)

// Publishers builds and configures every publish driver the profile
// names, in order.
func Publishers(p spec.Profile) (*publish.Fan, error) {
	var adapters []publish.Adapter
	for _, name := range p.Publishers {
		drv, err := publish.NewAdapter(name)
		if err != nil {
			return nil, err
		}

		switch name {
		case "kafka":
			kc := p.KafkaPublishConfig()
			err = drv.Configure(kafka.Config{
				Brokers: kc.Brokers,
				Topic:   kc.Topic,
				Acks:    kc.Acks,
			})
		case "stdout":
			sc := p.StdoutPublishConfig()
			err = drv.Configure(stdout.Config{
				PrintCounter:  sc.PrintCounter,
				ValueMaxBytes: sc.ValueMaxBytes,
			})
		default:
			err = fmt.Errorf("no config block for publisher %q", name)
		}
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, drv)
	}
	return publish.NewFan(adapters...), nil
}
