package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppName is the application name used for the config directory
const AppName = "txt2md"

// DefaultOutputFile is where converted Markdown goes when no path is given.
const DefaultOutputFile = "output.md"

// Config holds CLI configuration
type Config struct {
	PlainText    bool   `yaml:"plain_text,omitempty"`
	OutputFile   string `yaml:"output_file,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"` // text, json, ndjson, table, yaml
	LogLevel     string `yaml:"log_level,omitempty"`     // error, warn, info, debug
	FrontMatter  bool   `yaml:"front_matter,omitempty"`
	Workers      int    `yaml:"workers,omitempty"`
	RenderStyle  string `yaml:"render_style,omitempty"` // auto, dark, light, notty
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultConfigPath returns the default config file path
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ReadConfig reads the config file from the default location
func ReadConfig() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load loads config from the given path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("parsing config: workers must not be negative")
	}

	return &cfg, nil
}

// OutputPath returns the configured output file or the default.
func (c *Config) OutputPath() string {
	if c == nil || c.OutputFile == "" {
		return DefaultOutputFile
	}
	return c.OutputFile
}

// Save saves config to the given path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
