// Package duckdb provides a DuckDB database adapter for restoreport.
package duckdb

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sort"

	"github.com/leapstack-labs/restoreport/pkg/adapter"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
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
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// An empty path opens an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	a.Logger.Debug("connecting to duckdb", slog.String("path", cfg.Path))
	return a.Open(ctx, "duckdb", buildDuckDBDSN(cfg), cfg)
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, "main", adapter.QuestionPlaceholder)
}

// buildDuckDBDSN appends driver options (access_mode, threads, ...) to the
// database path as query parameters in a stable order.
func buildDuckDBDSN(cfg adapter.Config) string {
	if len(cfg.Options) == 0 {
		return cfg.Path
	}

	keys := make([]string, 0, len(cfg.Options))
	for k := range cfg.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := url.Values{}
	for _, k := range keys {
		q.Set(k, cfg.Options[k])
	}
	return cfg.Path + "?" + q.Encode()
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
