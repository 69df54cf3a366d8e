package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/sweep/errors"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config holds the persistent settings for sweep, loaded from sweep.yml.
// All fields are optional; command-line flags take precedence.
type Config struct {
	// Threads is the worker pool size. Zero means "use the host's
	// available parallelism".
	Threads int `yaml:"threads"`

	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Exclude lists walker exclude patterns (dockerignore-style) matched
	// against paths relative to the search root.
	Exclude []string `yaml:"exclude"`

	// Hidden includes hidden directories in the walk when true.
	Hidden bool `yaml:"hidden"`

	// Extensions captures free-form sections for components that define
	// their own configuration (e.g. "logging").
	Extensions map[string]interface{} `yaml:",inline"`
}

// Load reads and parses a sweep configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigInvalid(fmt.Sprintf("configuration file not found: %s", path))
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw YAML
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file")
	}
	return &cfg, nil
}

// LoadDefault finds and loads the configuration, returning an empty Config
// when no file exists. Absence of sweep.yml is not an error.
func LoadDefault() (*Config, error) {
	path, err := FindConfigFile()
	if err != nil {
		return &Config{}, nil
	}
	return Load(path)
}

// FindConfigFile searches for a sweep configuration file with the following
// precedence:
// 1. Current directory
// 2. XDG config directory (~/.config/sweep/sweep.yml)
func FindConfigFile() (string, error) {
	configNames := []string{
		"sweep.yml",
		"sweep.yaml",
		".sweep.yml",
		".sweep.yaml",
	}

	cwd, err := os.Getwd()
	if err == nil {
		for _, name := range configNames {
			path := filepath.Join(cwd, name)
			if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	if xdgPath := xdgConfigPath(); xdgPath != "" {
		if info, statErr := os.Stat(xdgPath); statErr == nil && !info.IsDir() {
			return xdgPath, nil
		}
	}

	return "", errors.ConfigInvalid("no sweep.yml found")
}

func xdgConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "sweep", "sweep.yml")
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded sweep.yml into the provided target struct. The target must be a
// pointer. A missing key leaves the target zero-valued and is not an error.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
