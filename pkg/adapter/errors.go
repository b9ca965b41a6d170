package adapter

import (
	"errors"
	"fmt"
	"net"
)

// ErrNotConnected is returned when an operation needs an open connection.
var ErrNotConnected = errors.New("database connection not established")

// ConnectionError is returned when a database session cannot be opened or
// authenticated. It covers unreachable hosts, bad credentials, missing
// databases and protocol mismatches alike.
type ConnectionError struct {
	Driver string
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s database %s: %v", e.Driver, e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// DescribeTarget renders the connection target of cfg for error messages.
// Credentials are never included.
func DescribeTarget(cfg Config) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	addr := cfg.Host
	if cfg.Port != "" {
		addr = net.JoinHostPort(cfg.Host, cfg.Port)
	}
	if cfg.Database == "" {
		return addr
	}
	return addr + "/" + cfg.Database
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %v\nHint: Check database.driver in restoreport.yaml or the --driver flag", e.Type, e.Available)
}
