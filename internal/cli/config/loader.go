package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Context keys for values shared between the root command and subcommands.
type (
	configKey struct{}
	loggerKey struct{}
)

// configFileNames are searched in the working directory when no --config
// flag is given.
var configFileNames = []string{"restoreport.yaml", "restoreport.yml"}

var configFileUsed string

// pgEnv maps the libpq variables onto config keys. They are the generic
// fallback for the DB_* variables.
var pgEnv = map[string]string{
	"PGDATABASE": "database.name",
	"PGUSER":     "database.user",
	"PGPASSWORD": "database.password",
	"PGHOST":     "database.host",
	"PGPORT":     "database.port",
}

var dbEnv = map[string]string{
	"DB_NAME":     "database.name",
	"DB_USER":     "database.user",
	"DB_PASSWORD": "database.password",
	"DB_HOST":     "database.host",
	"DB_PORT":     "database.port",
}

var appEnv = map[string]string{
	"RESTOREPORT_DRIVER":    "database.driver",
	"RESTOREPORT_DB_PATH":   "database.path",
	"RESTOREPORT_SSLMODE":   "database.sslmode",
	"RESTOREPORT_FORMAT":    "format",
	"RESTOREPORT_LOG_LEVEL": "log_level",
	"RESTOREPORT_VERBOSE":   "verbose",
	"RESTOREPORT_TIMEOUT":   "timeout",
}

// flagKeys maps CLI flag names onto config keys. Flags not listed here
// (--config, --env-file) steer loading and are not config values.
var flagKeys = map[string]string{
	"driver":    "database.driver",
	"db-path":   "database.path",
	"sslmode":   "database.sslmode",
	"host":      "database.host",
	"port":      "database.port",
	"dbname":    "database.name",
	"user":      "database.user",
	"format":    "format",
	"log-level": "log_level",
	"verbose":   "verbose",
	"timeout":   "timeout",
}

// Options controls where Load looks for settings.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty restoreport.yaml or
	// restoreport.yml in the working directory is used if present.
	ConfigFile string
	// EnvFile is a dotenv file merged into the process environment without
	// overriding variables that are already set.
	EnvFile string
	// EnvFileRequired turns a missing EnvFile into an error.
	EnvFileRequired bool
	// Flags are applied last, and only the ones explicitly set.
	Flags *pflag.FlagSet
}

// findConfigFile finds the config file to use.
// Priority: explicit path > restoreport.yaml > restoreport.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadEnvFile merges path into the process environment. A missing file is
// only an error when required is set.
func loadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error reading env file %s: %w", path, err)
	}
	return nil
}

// mappedEnv returns an env provider that only picks up the variables in
// keys. A variable that is set to the empty string still counts as set.
func mappedEnv(prefix string, keys map[string]string) *env.Env {
	return env.Provider(prefix, ".", func(s string) string {
		return keys[s]
	})
}

// Load resolves configuration.
// Precedence (highest to lowest): flags > RESTOREPORT_* > DB_* > PG* >
// config file > defaults.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"database.driver":   DefaultDriver,
		"database.name":     DefaultName,
		"database.user":     DefaultUser,
		"database.password": DefaultPassword,
		"database.host":     DefaultHost,
		"database.port":     DefaultPort,
		"format":            DefaultFormat,
		"log_level":         DefaultLogLevel,
		"verbose":           false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. .env pre-populates the environment for the layers below
	if err := loadEnvFile(opts.EnvFile, opts.EnvFileRequired); err != nil {
		return nil, err
	}

	// 3. Config file, with ${VAR} references expanded
	configFileUsed = findConfigFile(opts.ConfigFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if err := k.Load(confmap.Provider(expandFileValues(k), "."), nil); err != nil {
			return nil, fmt.Errorf("error expanding config file %s: %w", configFileUsed, err)
		}
	}

	// 4. Environment: generic PG* first so the specific DB_* win
	for _, p := range []struct {
		prefix string
		keys   map[string]string
	}{
		{"PG", pgEnv},
		{"DB_", dbEnv},
		{"RESTOREPORT_", appEnv},
	} {
		if err := k.Load(mappedEnv(p.prefix, p.keys), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s env vars: %w", p.prefix, err)
		}
	}

	// 5. Flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Format = strings.ToLower(cfg.Format)
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// NewLogger builds the text logger used by every command.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// WithConfig stores cfg and logger in ctx.
func WithConfig(ctx context.Context, cfg *Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	return cfg, ok
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match // Return original if not found
	})
}

// expandKeys are the config file values that may reference ${VAR}.
var expandKeys = []string{
	"database.name",
	"database.user",
	"database.password",
	"database.host",
	"database.path",
}

// expandFileValues returns the expandKeys present in k with ${VAR}
// references replaced. Call it before the environment and flag layers so
// only values from the config file are expanded.
func expandFileValues(k *koanf.Koanf) map[string]interface{} {
	out := make(map[string]interface{}, len(expandKeys))
	for _, key := range expandKeys {
		if k.Exists(key) {
			out[key] = expandEnvVars(k.String(key))
		}
	}
	return out
}
