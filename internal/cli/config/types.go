// Package config resolves restoreport's settings from defaults, an optional
// YAML file, the environment and command-line flags.
package config

import (
	"strings"
	"time"

	"github.com/leapstack-labs/restoreport/pkg/adapter"
)

// Config holds all CLI configuration options.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Format   string         `koanf:"format"`
	LogLevel string         `koanf:"log_level"`
	Verbose  bool           `koanf:"verbose"`
	// Timeout bounds the whole run. Zero means no timeout.
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds the connection parameters.
type DatabaseConfig struct {
	Driver   string `koanf:"driver"`
	Name     string `koanf:"name"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	// Path is the database file for sqlite and duckdb.
	Path    string `koanf:"path"`
	SSLMode string `koanf:"sslmode"`
}

// Default configuration values.
const (
	DefaultDriver   = "postgres"
	DefaultName     = "duke_restaurants"
	DefaultUser     = "vscode"
	DefaultPassword = "vscode"
	DefaultHost     = "localhost"
	DefaultPort     = "5432"
	DefaultFormat   = "text"
	DefaultLogLevel = "warn"
	DefaultEnvFile  = ".env"
)

// IsFileBased reports whether the driver opens a local file instead of a
// network connection.
func (d DatabaseConfig) IsFileBased() bool {
	switch strings.ToLower(d.Driver) {
	case "sqlite", "duckdb":
		return true
	}
	return false
}

// ToAdapterConfig converts the connection parameters for adapter.Connect.
func (d DatabaseConfig) ToAdapterConfig() adapter.Config {
	cfg := adapter.Config{
		Type:     strings.ToLower(d.Driver),
		Path:     d.Path,
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Name,
		Username: d.User,
		Password: d.Password,
	}
	if d.SSLMode != "" {
		cfg.Options = map[string]string{"sslmode": d.SSLMode}
	}
	return cfg
}
