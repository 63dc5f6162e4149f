// Package config loads the YAML server configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	BindAddress     string   `yaml:"bind_address"`
	AllowOrigins    []string `yaml:"allow_origins"`
	BodyLimit       string   `yaml:"body_limit"`
	ReadTimeoutSec  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSec int      `yaml:"write_timeout_seconds"`
	IdleTimeoutSec  int      `yaml:"idle_timeout_seconds"`
	LogRequests     bool     `yaml:"log_requests"`
}

// StorageConfig contains data directory settings.
type StorageConfig struct {
	DataDirectory string `yaml:"data_directory"`
	DatabaseFile  string `yaml:"database_file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5001,
			BindAddress:     "0.0.0.0",
			AllowOrigins:    []string{"*"},
			BodyLimit:       "32M",
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 30,
			IdleTimeoutSec:  120,
			LogRequests:     true,
		},
		Storage: StorageConfig{
			DataDirectory: "./data",
			DatabaseFile:  "interntrack.db",
		},
	}
}

// Load reads the config file at path, falling back to defaults when
// the file does not exist. A present-but-broken file is an error, not
// a silent fallback.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ServerAddr returns the listen address.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// DatabasePath returns the full path of the sqlite file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Storage.DataDirectory, c.Storage.DatabaseFile)
}

// EnsureDirectories creates the data directory if missing.
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.Storage.DataDirectory, 0o755)
}
