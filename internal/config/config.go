// Package config holds bridge constants and the irisbridge.yaml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level irisbridge.yaml configuration.
type Config struct {
	// NullPolicy decides what boxing a nil value does: "unit" (default)
	// boxes it as Unit, "reject" returns an error.
	NullPolicy string `yaml:"null_policy,omitempty"`

	// OnUnsupported decides what the CLI does when a value cannot be boxed:
	// "exit" (default) terminates the process, "error" reports and continues.
	OnUnsupported string `yaml:"on_unsupported,omitempty"`

	// MaxBlocks caps the number of live host blocks. Zero means unlimited.
	MaxBlocks int `yaml:"max_blocks,omitempty"`

	// LogLevel is a zap level name (debug, info, warn, error). Defaults to "info".
	LogLevel string `yaml:"log_level,omitempty"`

	// Color controls ANSI output of the CLI: "auto" (default), "always", "never".
	Color string `yaml:"color,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses an irisbridge.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses irisbridge.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for irisbridge.yaml starting from dir and walking up
// to parent directories. Returns an empty path and nil error if none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	switch c.NullPolicy {
	case "", NullAsUnit, NullReject:
	default:
		return fmt.Errorf("%s: null_policy: must be %q or %q, got %q", path, NullAsUnit, NullReject, c.NullPolicy)
	}

	switch c.OnUnsupported {
	case "", UnsupportedExit, UnsupportedError:
	default:
		return fmt.Errorf("%s: on_unsupported: must be %q or %q, got %q", path, UnsupportedExit, UnsupportedError, c.OnUnsupported)
	}

	if c.MaxBlocks < 0 {
		return fmt.Errorf("%s: max_blocks: must not be negative, got %d", path, c.MaxBlocks)
	}

	if c.LogLevel != "" {
		if _, err := parseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%s: log_level: %w", path, err)
		}
	}

	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color: must be one of auto, always, never, got %q", path, c.Color)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.NullPolicy == "" {
		c.NullPolicy = NullAsUnit
	}
	if c.OnUnsupported == "" {
		c.OnUnsupported = UnsupportedExit
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
}
