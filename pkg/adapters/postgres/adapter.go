// Package postgres provides a PostgreSQL database adapter for restoreport.
package postgres

import (
	"context"
	"io"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/leapstack-labs/restoreport/pkg/adapter"
)

const (
	defaultHost    = "localhost"
	defaultPort    = "5432"
	defaultSSLMode = "disable"
	defaultSchema  = "public"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
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
	return "postgres"
}

// Connect establishes a connection to PostgreSQL through pgx.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	a.Logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
		slog.String("database", cfg.Database),
		slog.String("user", cfg.Username))

	return a.Open(ctx, "pgx", buildPostgresDSN(cfg), cfg)
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, defaultSchema, adapter.DollarPlaceholder)
}

// buildPostgresDSN constructs a libpq key=value connection string.
func buildPostgresDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = defaultHost
	}

	port := cfg.Port
	if port == "" {
		port = defaultPort
	}

	sslmode := defaultSSLMode
	if mode, ok := cfg.Options["sslmode"]; ok && mode != "" {
		sslmode = mode
	}

	parts := []string{
		"host=" + quoteDSNValue(host),
		"port=" + quoteDSNValue(port),
		"dbname=" + quoteDSNValue(cfg.Database),
		"sslmode=" + quoteDSNValue(sslmode),
	}
	if cfg.Username != "" {
		parts = append(parts, "user="+quoteDSNValue(cfg.Username))
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+quoteDSNValue(cfg.Password))
	}

	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSNValue single-quotes values that are empty or contain spaces,
// quotes or backslashes.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\\t\n") {
		return v
	}
	return "'" + dsnEscaper.Replace(v) + "'"
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
