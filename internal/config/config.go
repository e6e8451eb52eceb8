// Package config provides configuration loading for watchsync.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// Config represents the complete watchsync configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	NATS    NATSConfig    `yaml:"nats"`
	Sync    SyncConfig    `yaml:"sync"`
	User    UserConfig    `yaml:"user"`
}

// ServerConfig configures the remote authority endpoint
type ServerConfig struct {
	// URL is the base URL of the watchlist server
	URL string `yaml:"url"`
}

// StorageConfig configures the local durable store
type StorageConfig struct {
	// Driver selects the storage backend: "bolt" or "sqlite"
	Driver string `yaml:"driver"`
	// Path is the database file path
	Path string `yaml:"path"`
}

// NATSConfig configures the cross-context broadcast transport
type NATSConfig struct {
	// URL is the NATS server URL (empty = in-process broadcast only)
	URL string `yaml:"url"`
}

// SyncConfig configures reconciliation scheduling
type SyncConfig struct {
	// Interval is the periodic reconciliation interval in resident mode
	Interval Duration `yaml:"interval"`
	// ProbeInterval is the connectivity probe interval
	ProbeInterval Duration `yaml:"probe_interval"`
}

// Duration wraps time.Duration for YAML unmarshaling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UserConfig identifies the watchlist owner
type UserConfig struct {
	// ID is the user identifier used against the remote authority
	ID string `yaml:"id"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8080",
		},
		Storage: StorageConfig{
			Driver: DriverBolt,
			Path:   "watchsync.db",
		},
		Sync: SyncConfig{
			Interval:      Duration(30 * time.Second),
			ProbeInterval: Duration(10 * time.Second),
		},
	}
}

// Load reads a YAML config file on top of the defaults.
// Отсутствующий файл не ошибка: возвращаются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Storage.Driver != DriverBolt && c.Storage.Driver != DriverSQLite {
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
