package duckdb

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/restoreport/internal/report"
	"github.com/leapstack-labs/restoreport/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name: "in-memory",
			setupPath: func(_ *testing.T) string {
				return ""
			},
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "restaurants.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adp := New(nil)

			dbPath := tt.setupPath(t)
			require.NoError(t, adp.Connect(context.Background(), adapter.Config{Type: "duckdb", Path: dbPath}))
			defer func() { _ = adp.Close() }()

			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_GetTableMetadata(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, adapter.Config{Type: "duckdb"}))
	defer func() { _ = adp.Close() }()

	require.NoError(t, adp.Exec(ctx, `CREATE TABLE restaurants (
		name VARCHAR NOT NULL,
		distance_miles DOUBLE,
		rating DOUBLE,
		avg_cost DOUBLE,
		cuisine VARCHAR
	)`))
	require.NoError(t, adp.Exec(ctx, `INSERT INTO restaurants VALUES ('Cafe A', 1.2, 4.5, 10.0, 'Cafe')`))

	meta, err := adp.GetTableMetadata(ctx, "restaurants")
	require.NoError(t, err)
	assert.Equal(t, "main", meta.Schema)
	assert.Equal(t, int64(1), meta.RowCount)
	assert.Len(t, meta.Columns, 5)
	assert.True(t, meta.HasColumn("avg_cost"))
}

func TestAdapter_ReportsOnDecimalColumns(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, adapter.Config{Type: "duckdb"}))
	defer func() { _ = adp.Close() }()

	require.NoError(t, adp.Exec(ctx, `CREATE TABLE restaurants (
		name VARCHAR,
		distance_miles DECIMAL(4,1),
		rating DECIMAL(2,1),
		avg_cost DECIMAL(6,2),
		cuisine VARCHAR
	)`))
	require.NoError(t, adp.Exec(ctx, `INSERT INTO restaurants VALUES
		('Cafe A', 1.2, 4.5, 10.00, 'Cafe'),
		('Diner', 2.0, 5.0, 20.00, 'American')`))

	var buf bytes.Buffer
	renderer, err := report.NewRenderer(report.FormatText, &buf)
	require.NoError(t, err)
	require.NoError(t, report.NewRunner(adp, renderer, nil).Run(ctx))

	out := buf.String()
	assert.Contains(t, out, "  Cafe A                    - 1.2 miles\n  Diner                     - 2.0 miles\n")
	assert.Contains(t, out, "  1. Diner                     - Rating: 5.0\n  2. Cafe A                    - Rating: 4.5\n")
	assert.Contains(t, out, "  Cafe A                    - $10.00 → $10.75 (with tax)\n")
	assert.Contains(t, out, "  Diner                     - $20.00 → $21.50 (with tax)\n")
}

func TestAdapter_NotConnected(t *testing.T) {
	_, err := New(nil).Query(context.Background(), "SELECT 1")
	require.ErrorIs(t, err, adapter.ErrNotConnected)
}

func TestBuildDuckDBDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  adapter.Config
		want string
	}{
		{"memory", adapter.Config{}, ""},
		{"path only", adapter.Config{Path: "r.duckdb"}, "r.duckdb"},
		{
			"options sorted",
			adapter.Config{Path: "r.duckdb", Options: map[string]string{"threads": "2", "access_mode": "read_only"}},
			"r.duckdb?access_mode=read_only&threads=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDuckDBDSN(tt.cfg))
		})
	}
}
