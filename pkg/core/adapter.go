package core

import (
	"context"
	"database/sql"
	"strings"
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, cfg AdapterConfig) error

	// Close closes the database connection.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// GetTableMetadata retrieves metadata for a table.
	GetTableMetadata(ctx context.Context, table string) (*TableMetadata, error)

	// DialectName returns the name of the SQL dialect spoken by the adapter.
	DialectName() string
}

// AdapterConfig holds configuration for connecting to a database.
// Port is kept as text; the driver validates it at connect time.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Options  map[string]string
}

// Column represents a column in a database table.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
	Position   int
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	Schema   string
	Name     string
	Columns  []Column
	RowCount int64
}

// HasColumn reports whether the table has a column with the given name.
func (m *TableMetadata) HasColumn(name string) bool {
	_, ok := m.Column(name)
	return ok
}

// Column returns the column with the given name, compared case-insensitively.
func (m *TableMetadata) Column(name string) (Column, bool) {
	for _, c := range m.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}
