// Package cli provides the command-line interface for restoreport.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/leapstack-labs/restoreport/internal/cli/commands"
	"github.com/leapstack-labs/restoreport/internal/cli/config"
	"github.com/leapstack-labs/restoreport/internal/report"
	"github.com/leapstack-labs/restoreport/pkg/adapter"
	"github.com/spf13/cobra"

	// Register database adapters via init()
	_ "github.com/leapstack-labs/restoreport/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/restoreport/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/restoreport/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/restoreport/pkg/adapters/sqlite"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// skipConfig lists commands that run without resolving configuration.
var skipConfig = map[string]bool{
	"help":       true,
	"completion": true,
	"__complete": true,
	"version":    true,
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		envFile string
	)

	rootCmd := &cobra.Command{
		Use:   "restoreport",
		Short: "restoreport - restaurant reports from a SQL database",
		Long: `restoreport connects to a database holding a restaurants table and prints
four reports: nearby restaurants, the top rated ones, costs with tax and
restaurant counts per cuisine.

Running restoreport without a subcommand prints the reports.`,
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if skipConfig[cmd.Name()] {
				return nil
			}

			flags := cmd.Root().PersistentFlags()
			cfg, err := config.Load(config.Options{
				ConfigFile:      cfgFile,
				EnvFile:         envFile,
				EnvFileRequired: flags.Changed("env-file"),
				Flags:           flags,
			})
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(config.WithConfig(ctx, cfg, logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return commands.RunReports(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./restoreport.yaml)")
	pf.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded into the environment if present")
	pf.String("driver", "", "Database driver ("+strings.Join(adapter.ListAdapters(), "|")+")")
	pf.String("db-path", "", "Database file for sqlite and duckdb (empty for in-memory)")
	pf.String("host", "", "Database host (overrides DB_HOST/PGHOST)")
	pf.String("port", "", "Database port (overrides DB_PORT/PGPORT)")
	pf.String("dbname", "", "Database name (overrides DB_NAME/PGDATABASE)")
	pf.String("user", "", "Database user (overrides DB_USER/PGUSER)")
	pf.String("sslmode", "", "PostgreSQL sslmode (default: disable)")
	pf.StringP("format", "f", "", "Output format ("+strings.Join(report.Formats, "|")+")")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.BoolP("verbose", "v", false, "Verbose output (debug logging)")
	pf.Duration("timeout", 0, "Abort the run after this long (0 disables)")

	// Register completion for format and driver flags
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return report.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return adapter.ListAdapters(), cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the run.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for restoreport.

To load completions:

Bash:
  $ source <(restoreport completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ restoreport completion bash > /etc/bash_completion.d/restoreport
  # macOS:
  $ restoreport completion bash > $(brew --prefix)/etc/bash_completion.d/restoreport

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ restoreport completion zsh > "${fpath[1]}/_restoreport"

Fish:
  $ restoreport completion fish | source

  # To load completions for each session, execute once:
  $ restoreport completion fish > ~/.config/fish/completions/restoreport.fish

PowerShell:
  PS> restoreport completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
