package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/restoreport/pkg/core"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Open, Close, Exec, and Query implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// PlaceholderFunc formats the n-th (1-based) bind parameter of a dialect.
type PlaceholderFunc func(n int) string

// DollarPlaceholder formats PostgreSQL-style placeholders ($1, $2, ...).
func DollarPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// QuestionPlaceholder formats positional placeholders (?).
func QuestionPlaceholder(int) string {
	return "?"
}

func (b *BaseSQLAdapter) log() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b.Logger
}

// Open opens driverName with dsn and verifies the session with a ping.
// The pool is capped at one connection: restoreport holds a single session
// and issues one statement at a time.
func (b *BaseSQLAdapter) Open(ctx context.Context, driverName, dsn string, cfg core.AdapterConfig) error {
	kind := cfg.Type
	if kind == "" {
		kind = driverName
	}
	target := DescribeTarget(cfg)

	b.log().Debug("opening database connection",
		slog.String("driver", kind),
		slog.String("target", target))

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return &ConnectionError{Driver: kind, Target: target, Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &ConnectionError{Driver: kind, Target: target, Err: err}
	}

	b.DB = db
	b.Cfg = cfg
	return nil
}

// Close closes the database connection. Calling Close more than once is safe.
func (b *BaseSQLAdapter) Close() error {
	if b.DB == nil {
		return nil
	}
	b.log().Debug("closing database connection")
	err := b.DB.Close()
	b.DB = nil
	return err
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	_, err := b.DB.ExecContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*core.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// ParseQualifiedName splits a table reference into schema and name.
// Uses defaultSchema if the reference is not qualified.
func ParseQualifiedName(table, defaultSchema string) (schema, name string) {
	if parts := strings.Split(table, "."); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return defaultSchema, table
}

// GetTableMetadataCommon provides a shared implementation of GetTableMetadata
// over information_schema.columns. Concrete adapters pass their default
// schema and placeholder style.
func (b *BaseSQLAdapter) GetTableMetadataCommon(ctx context.Context, table, defaultSchema string, ph PlaceholderFunc) (*core.TableMetadata, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}

	schema, tableName := ParseQualifiedName(table, defaultSchema)

	//nolint:gosec // Placeholders are safe - they come from PlaceholderFunc
	query := fmt.Sprintf(`
		SELECT
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, ph(1), ph(2))

	rows, err := b.DB.QueryContext(ctx, query, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var col core.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	rowCount, err := b.CountRows(ctx, schema+"."+tableName)
	if err != nil {
		return nil, err
	}

	return &core.TableMetadata{
		Schema:   schema,
		Name:     tableName,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}

// CountRows returns SELECT COUNT(*) for a table reference.
func (b *BaseSQLAdapter) CountRows(ctx context.Context, table string) (int64, error) {
	if b.DB == nil {
		return 0, ErrNotConnected
	}
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", table) //nolint:gosec // Table names come from catalog metadata
	var rowCount int64
	if err := b.DB.QueryRowContext(ctx, countQuery).Scan(&rowCount); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return rowCount, nil
}
