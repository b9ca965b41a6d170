// Package sqlite provides a SQLite database adapter for restoreport, backed
// by the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/restoreport/pkg/adapter"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
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
	return "sqlite"
}

// Connect opens the database file at cfg.Path.
// An empty path opens an in-memory database, which lives as long as the
// adapter's single connection.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	if cfg.Path == "" {
		cfg.Path = MemoryPath
	}
	a.Logger.Debug("connecting to sqlite", slog.String("path", cfg.Path))
	return a.Open(ctx, "sqlite", cfg.Path, cfg)
}

// GetTableMetadata retrieves metadata for a specified table using
// PRAGMA table_info, since SQLite has no information_schema.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	schema, tableName := adapter.ParseQualifiedName(table, "main")

	rows, err := a.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA %s.table_info(%s)", schema, tableName))
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []adapter.Column
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		columns = append(columns, adapter.Column{
			Name:       name,
			Type:       colType,
			Nullable:   notNull == 0,
			PrimaryKey: pk > 0,
			Position:   cid + 1,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	rowCount, err := a.CountRows(ctx, schema+"."+tableName)
	if err != nil {
		return nil, err
	}

	return &adapter.Metadata{
		Schema:   schema,
		Name:     tableName,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
