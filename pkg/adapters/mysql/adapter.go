// Package mysql provides a MySQL/MariaDB database adapter for restoreport.
package mysql

import (
	"context"
	"io"
	"log/slog"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/leapstack-labs/restoreport/pkg/adapter"
)

const (
	defaultHost = "localhost"
	defaultPort = "3306"
)

// Adapter implements the adapter.Adapter interface for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MySQL adapter instance.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "mysql"
}

// Connect establishes a TCP connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	a.Logger.Debug("connecting to mysql",
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
		slog.String("database", cfg.Database))

	return a.Open(ctx, "mysql", buildMySQLDSN(cfg), cfg)
}

// GetTableMetadata retrieves metadata for a specified table. The schema
// defaults to the connected database.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, a.Cfg.Database, adapter.QuestionPlaceholder)
}

// buildMySQLDSN renders cfg through the driver's own DSN formatter so that
// credentials are escaped correctly. Options are passed through as driver
// parameters (e.g. tls=skip-verify).
func buildMySQLDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = defaultHost
	}
	port := cfg.Port
	if port == "" {
		port = defaultPort
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, port)
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	if len(cfg.Options) > 0 {
		mc.Params = make(map[string]string, len(cfg.Options))
		for k, v := range cfg.Options {
			mc.Params[k] = v
		}
	}
	return mc.FormatDSN()
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
