package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/restoreport/internal/cli/config"
	"github.com/leapstack-labs/restoreport/internal/report"
	"github.com/leapstack-labs/restoreport/pkg/adapter"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext returns the config and logger prepared by the root
// command. Commands executed without the root command load the config from
// their own flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, ok := config.GetConfig(ctx)
	if !ok {
		var err error
		cfg, err = config.Load(config.Options{Flags: cmd.Flags()})
		if err != nil {
			return nil, err
		}
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: config.GetLogger(ctx),
	}, nil
}

// RunContext derives the context for database work, bounded by the
// configured timeout. The returned cancel func must always be called.
func (c *CommandContext) RunContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Cfg.Timeout > 0 {
		return context.WithTimeout(ctx, c.Cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// Connect creates the configured adapter and opens its connection.
// The caller owns the adapter and must Close it.
func (c *CommandContext) Connect(ctx context.Context) (adapter.Adapter, error) {
	adpCfg := c.Cfg.Database.ToAdapterConfig()

	adp, err := adapter.NewAdapter(adpCfg, c.Logger)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := adp.Connect(ctx, adpCfg); err != nil {
		return nil, err
	}
	c.Logger.Debug("connected",
		slog.String("driver", adpCfg.Type),
		slog.String("target", adapter.DescribeTarget(adpCfg)),
		slog.Duration("elapsed", time.Since(start)))
	return adp, nil
}

// Target describes the configured database for the "Connecting to" line.
func (c *CommandContext) Target() report.Target {
	db := c.Cfg.Database
	if db.IsFileBased() {
		path := db.Path
		if path == "" {
			path = ":memory:"
		}
		return report.Target{Path: path}
	}
	return report.Target{
		Database: db.Name,
		Host:     db.Host,
		Port:     db.Port,
		User:     db.User,
	}
}

func closeAdapter(adp adapter.Adapter, logger *slog.Logger) {
	if err := adp.Close(); err != nil {
		logger.Warn("failed to close database connection", slog.String("error", err.Error()))
	}
}

func wrapClose(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to close database connection: %w", err)
}
