package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/restoreport/internal/report"
	"github.com/leapstack-labs/restoreport/pkg/adapter"
)

// Validate checks if the configuration is valid. Connection values are
// left to the driver.
func (c *Config) Validate() error {
	if c.Database.Driver == "" {
		return fmt.Errorf("database.driver is required")
	}
	if !adapter.IsRegistered(c.Database.Driver) {
		return &adapter.UnknownAdapterError{
			Type:      c.Database.Driver,
			Available: adapter.ListAdapters(),
		}
	}

	if !report.IsValidFormat(c.Format) {
		return fmt.Errorf("invalid format %q (expected one of: %s)", c.Format, strings.Join(report.Formats, ", "))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// ParseLevel converts a log level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", name)
	}
	return level, nil
}
