package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/restoreport/internal/testutil"
	"github.com/leapstack-labs/restoreport/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaSQL = `CREATE TABLE restaurants (
	name TEXT NOT NULL,
	distance_miles REAL,
	rating REAL,
	avg_cost REAL,
	cuisine TEXT
)`

func connect(t *testing.T, path string) *Adapter {
	t.Helper()
	adp := New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(context.Background(), adapter.Config{Type: "sqlite", Path: path}))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func TestAdapter_ConnectInMemory(t *testing.T) {
	adp := connect(t, "")

	assert.True(t, adp.IsConnected())
	assert.Equal(t, MemoryPath, adp.Cfg.Path)
	assert.Equal(t, "sqlite", adp.DialectName())
}

func TestAdapter_QueryRoundTrip(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, "")

	require.NoError(t, adp.Exec(ctx, schemaSQL))
	require.NoError(t, adp.Exec(ctx, `INSERT INTO restaurants VALUES ('Cafe A', 1.2, 4.5, 10.0, 'Cafe')`))

	rows, err := adp.Query(ctx, "SELECT name, distance_miles FROM restaurants")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var name string
	var distance float64
	require.NoError(t, rows.Scan(&name, &distance))
	assert.Equal(t, "Cafe A", name)
	assert.InDelta(t, 1.2, distance, 1e-9)
	assert.False(t, rows.Next())
	require.NoError(t, rows.Err())
}

func TestAdapter_GetTableMetadata(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, filepath.Join(t.TempDir(), "restaurants.db"))

	require.NoError(t, adp.Exec(ctx, schemaSQL))
	require.NoError(t, adp.Exec(ctx, `INSERT INTO restaurants VALUES
		('Cafe A', 1.2, 4.5, 10.0, 'Cafe'),
		('Cafe B', 3.0, 4.8, 20.0, 'Bistro')`))

	meta, err := adp.GetTableMetadata(ctx, "restaurants")
	require.NoError(t, err)

	assert.Equal(t, "main", meta.Schema)
	assert.Equal(t, int64(2), meta.RowCount)
	require.Len(t, meta.Columns, 5)

	name, ok := meta.Column("name")
	require.True(t, ok)
	assert.False(t, name.Nullable)
	assert.Equal(t, 1, name.Position)

	for _, col := range []string{"distance_miles", "rating", "avg_cost", "cuisine"} {
		assert.True(t, meta.HasColumn(col), "column %s should exist", col)
	}
}

func TestAdapter_GetTableMetadata_Missing(t *testing.T) {
	adp := connect(t, "")

	_, err := adp.GetTableMetadata(context.Background(), "restaurants")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAdapter_NotConnected(t *testing.T) {
	_, err := New(nil).GetTableMetadata(context.Background(), "restaurants")
	require.ErrorIs(t, err, adapter.ErrNotConnected)
}

func TestAdapter_Registry(t *testing.T) {
	factory, ok := adapter.Get("sqlite")
	require.True(t, ok, "sqlite adapter should be registered")
	_, ok = factory(nil).(*Adapter)
	assert.True(t, ok)
}
