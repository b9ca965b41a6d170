package commands

import (
	"log/slog"

	"github.com/leapstack-labs/restoreport/internal/report"
	"github.com/spf13/cobra"
)

// NewReportCommand creates the report command. The root command runs the
// same reports when invoked without a subcommand.
func NewReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the restaurant reports",
		Long: `Connect to the database and print four reports on the restaurants table:

  1. Restaurants within 2.0 miles, closest first
  2. Top 3 restaurants by rating
  3. Average cost with 7.5% tax
  4. Restaurant count per cuisine

Connection parameters come from DB_* variables, falling back to the
libpq PG* variables and then to built-in defaults.`,
		Example: `  # Report on the default local database
  restoreport report

  # Use a SQLite file and render tables
  restoreport report --driver sqlite --db-path restaurants.db --format table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunReports(cmd)
		},
	}
}

// RunReports connects, runs every report and prints the results to the
// command's output.
func RunReports(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	renderer, err := report.NewRenderer(cmdCtx.Cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, cancel := cmdCtx.RunContext(cmd)
	defer cancel()

	if err := renderer.Connecting(cmdCtx.Target()); err != nil {
		return err
	}

	adp, err := cmdCtx.Connect(ctx)
	if err != nil {
		return err
	}
	defer closeAdapter(adp, cmdCtx.Logger)

	if err := report.NewRunner(adp, renderer, cmdCtx.Logger).Run(ctx); err != nil {
		if aerr := renderer.Abort(err); aerr != nil {
			cmdCtx.Logger.Warn("failed to write partial output", slog.String("error", aerr.Error()))
		}
		return err
	}

	if err := wrapClose(adp.Close()); err != nil {
		return err
	}
	return renderer.Finish()
}
