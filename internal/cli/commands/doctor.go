package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/restoreport/internal/cli/output"
	"github.com/spf13/cobra"
)

// reportTable is the table every report reads.
const reportTable = "restaurants"

// requiredColumns are the columns the reports select.
var requiredColumns = []string{"name", "distance_miles", "rating", "avg_cost", "cuisine"}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the database connection and the restaurants table",
		Long: `Connect with the resolved settings and verify that the restaurants table
exists and has every column the reports read.

Checks:
  - the connection can be opened
  - each required column is present
  - the number of rows in the table`,
		Example: `  # Check the default database
  restoreport doctor

  # Check a DuckDB file
  restoreport doctor --driver duckdb --db-path restaurants.duckdb`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := output.NewRenderer(cmd.OutOrStdout())
	styles := r.Styles()

	ctx, cancel := cmdCtx.RunContext(cmd)
	defer cancel()

	target := cmdCtx.Target()
	if target.Path != "" {
		r.Println(styles.Header1.Render("Checking " + target.Path))
	} else {
		r.Println(styles.Header1.Render(fmt.Sprintf("Checking %s at %s:%s as %s", target.Database, target.Host, target.Port, target.User)))
	}

	adp, err := cmdCtx.Connect(ctx)
	if err != nil {
		r.Fail("connection")
		return err
	}
	defer closeAdapter(adp, cmdCtx.Logger)
	r.Pass(fmt.Sprintf("connected (%s)", adp.DialectName()))

	meta, err := adp.GetTableMetadata(ctx, reportTable)
	if err != nil {
		r.Fail("table " + reportTable)
		return fmt.Errorf("failed to read %s metadata: %w", reportTable, err)
	}

	r.Println()
	r.Println(styles.Header2.Render(meta.Name))

	var missing []string
	for _, name := range requiredColumns {
		col, ok := meta.Column(name)
		if !ok {
			missing = append(missing, name)
			r.Fail(name + " missing")
			continue
		}
		r.Pass(fmt.Sprintf("%s %s", col.Name, styles.Muted.Render("("+strings.ToLower(col.Type)+")")))
	}

	if meta.RowCount == 0 {
		r.Warn("table is empty")
	} else {
		r.Pass(fmt.Sprintf("%d rows", meta.RowCount))
	}

	if len(missing) > 0 {
		return fmt.Errorf("%s is missing required column(s): %s", reportTable, strings.Join(missing, ", "))
	}
	return nil
}
