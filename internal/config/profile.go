package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"docstore/internal/spec"
)

const SupportedSchema = "v1"

// LoadProfile parses a profile YAML, validates schema_version, and
// returns the parsed profile and an absolute path to the client config
// (if set).
func LoadProfile(path string) (spec.Profile, string, error) {
	var p spec.Profile
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, "", err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, "", err
	}
	if p.SchemaVersion == "" {
		p.SchemaVersion = SupportedSchema
	}
	if p.SchemaVersion != SupportedSchema {
		return p, "", fmt.Errorf("profile schema_version %q not supported (want %q)", p.SchemaVersion, SupportedSchema)
	}
	confPath := p.Client.Config
	if confPath != "" && !filepath.IsAbs(confPath) {
		confPath = filepath.Join(filepath.Dir(path), confPath)
	}
	return p, confPath, nil
}
