package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/restoreport/internal/cli/config"
	clitest "github.com/leapstack-labs/restoreport/internal/cli/testutil"
	"github.com/leapstack-labs/restoreport/internal/testutil"
	"github.com/spf13/cobra"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/restoreport/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/restoreport/pkg/adapters/sqlite"
)

const (
	createRestaurants = clitest.CreateRestaurants
	insertCafeA       = clitest.InsertCafeA
	// Same cuisine as Cafe A so the cuisine report has a single line.
	insertCafeB = `INSERT INTO restaurants VALUES ('Cafe B', 3.0, 4.8, 20.00, 'Cafe')`
)

func writeDB(t *testing.T, stmts ...string) string {
	t.Helper()
	return clitest.WriteSQLite(t, stmts...)
}

// execute runs cmd with cfg in its context and returns stdout.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{})

	ctx := config.WithConfig(context.Background(), cfg, testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func sqliteConfig(path string) *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Path: path},
		Format:   "text",
		LogLevel: "warn",
	}
}
