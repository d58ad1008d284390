package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"docstore/publish"
)

type Config struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Acks    int16    `yaml:"required_acks"` // 0,1,-1
}

type driver struct {
	cfg Config
	p   sarama.AsyncProducer
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-publish: want Config")
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	var err error
	d.p, err = sarama.NewAsyncProducer(cfg.Brokers, sc)
	return err
}

func (d *driver) Publish(ev *publish.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	d.p.Input() <- &sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Key:   sarama.StringEncoder(ev.ProjectID),
		Value: sarama.ByteEncoder(raw),
	}
	return nil
}

func (d *driver) Close() error {
	return d.p.Close()
}

func init() { publish.Register("kafka", func() publish.Adapter { return &driver{} }) }
