package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Client struct {
	ProjectID string `koanf:"project_id"`
	Endpoint  string `koanf:"endpoint"`
	Namespace string `koanf:"namespace"`
	TLSEn     bool   `koanf:"tls_enabled"`

	MetricsPort int           `koanf:"metrics_port"`
	DialTimeout time.Duration `koanf:"dial_timeout"`
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

// LoadClient merges YAML (if present) with env-vars
// (prefix `DOCSTORE__`, delimiter `__`).
func LoadClient(path string) (Client, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Client{}, err
		}
	}
	// schema version check (only when YAML is present)
	sv := k.String("schema_version")
	if sv != "" && sv != SupportedSchema {
		return Client{}, fmt.Errorf("client schema_version %q not supported (want %s)", sv, SupportedSchema)
	}

	_ = k.Load(env.Provider("DOCSTORE__", "__", nil), nil)

	var cfg Client
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	if cfg.ProjectID == "" {
		return cfg, errors.New("client config: project_id is required")
	}
	return cfg, nil
}

// ---------------------------------------------------------------------------
// defaults
// ---------------------------------------------------------------------------

func applyDefaults(c *Client) {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:8042"
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 9100
	}
}
