// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/restoreport/pkg/adapter"
	"github.com/leapstack-labs/restoreport/pkg/adapters/sqlite"
)

// Statements for building a restaurants table.
const (
	CreateRestaurants = `CREATE TABLE restaurants (
		name TEXT,
		distance_miles REAL,
		rating REAL,
		avg_cost REAL,
		cuisine TEXT
	)`
	InsertCafeA = `INSERT INTO restaurants VALUES ('Cafe A', 1.2, 4.5, 10.00, 'Cafe')`
	InsertCafeB = `INSERT INTO restaurants VALUES ('Cafe B', 3.0, 4.8, 20.00, 'Bistro')`
)

// connectionVars are every environment variable the config loader reads.
var connectionVars = []string{
	"DB_NAME", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT",
	"PGDATABASE", "PGUSER", "PGPASSWORD", "PGHOST", "PGPORT",
	"RESTOREPORT_DRIVER", "RESTOREPORT_DB_PATH", "RESTOREPORT_SSLMODE",
	"RESTOREPORT_FORMAT", "RESTOREPORT_LOG_LEVEL", "RESTOREPORT_VERBOSE", "RESTOREPORT_TIMEOUT",
}

// IsolateEnv unsets every variable the config loader reads and moves the
// test into an empty working directory, so no .env or restoreport.yaml is
// picked up. Everything is restored when the test ends.
func IsolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range connectionVars {
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("failed to unset %s: %v", name, err)
		}
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("failed to restore working directory %s: %v", wd, err)
		}
	})
}

// WriteSQLite creates a SQLite database file by running stmts and returns
// its path.
func WriteSQLite(t *testing.T, stmts ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "restaurants.db")
	ctx := context.Background()

	adp := sqlite.New(nil)
	if err := adp.Connect(ctx, adapter.Config{Type: "sqlite", Path: path}); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	for _, stmt := range stmts {
		if err := adp.Exec(ctx, stmt); err != nil {
			t.Fatalf("failed to run %q: %v", stmt, err)
		}
	}
	if err := adp.Close(); err != nil {
		t.Fatalf("failed to close %s: %v", path, err)
	}
	return path
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
