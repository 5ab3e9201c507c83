package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds persistent tool preferences loaded from
// ~/.specto/config.yaml.
type Config struct {
	// Color controls styled output: auto, always, or never.
	Color string `yaml:"color"`
	// Format is the default output format: normal, short, or json.
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Color: "auto", Format: "normal"}
}

// DefaultPath returns the default config file path: ~/.specto/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".specto", "config.yaml")
}

// Load reads a YAML config file from path. If the file does not exist,
// it returns the defaults and no error. Fields the file leaves unset
// keep their default values; set fields must name a known option.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.Format == "" {
		c.Format = "normal"
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color: unknown value %q", c.Color)
	}
	switch c.Format {
	case "normal", "short", "json":
	default:
		return fmt.Errorf("format: unknown value %q", c.Format)
	}
	return nil
}
