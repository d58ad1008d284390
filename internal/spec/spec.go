package spec

type KafkaPublish struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Acks    int16    `yaml:"required_acks"`
}

type StdoutPublish struct {
	PrintCounter  bool `yaml:"print_counter"`
	ValueMaxBytes int  `yaml:"value_max_bytes"`
}

type publishConfigs struct {
	Kafka  KafkaPublish  `yaml:"kafka"`
	Stdout StdoutPublish `yaml:"stdout"`
}

// Profile is the on-disk description of one client setup: where the
// client config lives and which publish drivers observe commits.
type Profile struct {
	SchemaVersion string `yaml:"schema_version"`

	Client struct {
		Config string `yaml:"config"` // path to the client config YAML
	} `yaml:"client"`

	// Ordered list of publish drivers attached to the client.
	Publishers     []string       `yaml:"publishers"`
	PublishConfigs publishConfigs `yaml:"publish_configs"`
}

func (p *Profile) KafkaPublishConfig() KafkaPublish   { return p.PublishConfigs.Kafka }
func (p *Profile) StdoutPublishConfig() StdoutPublish { return p.PublishConfigs.Stdout }
