package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteDefaultConfig when the file is already present
var ErrConfigExists = errors.New("config file already exists")

// DefaultConfig returns the configuration used when no config.yaml is found
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Logging.Level = "error"
	cfg.Search.Fields = []string{}
	cfg.Search.Sort = "name"
	cfg.Search.MaxDepth = 64
	cfg.Output.Format = OutputText
	cfg.Appearance.Theme = "auto"
	return cfg
}

// WriteDefaultConfig writes the default configuration to path, or to the
// user config file when path is empty. It refuses to overwrite an existing
// file. Returns the path written.
func WriteDefaultConfig(path string) (string, error) {
	if path == "" {
		path = GetConfigFile()
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return path, fmt.Errorf("marshaling config.yaml: %w", err)
	}

	//nolint:gosec // G301: 0755 is appropriate for config directory
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("create config directory: %w", err)
	}
	//nolint:gosec // G306: 0644 is appropriate for config file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("writing config.yaml: %w", err)
	}
	return path, nil
}
