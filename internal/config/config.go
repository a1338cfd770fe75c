// Package config assembles the bot's runtime configuration from CLI
// flags, environment variables (SUI_ARB_* prefix) and an optional
// TOML/YAML file, via spf13/viper (spec.md §6, SPEC_FULL.md §4.H). The
// teacher's own go.mod carries viper only as a transitive dependency of
// its node config; this package is the pack's first direct call site.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const envPrefix = "SUI_ARB"

// Config is the fully resolved configuration for the start-bot
// subcommand (spec.md §6 "CLI" flag list).
type Config struct {
	PrivateKey string
	RPCURL     string
	IPCPath    string

	ShioURL  string // optional sealed-auction feed URL
	RelayURL string // optional private-tx relay URL

	PublicTxSocket  string
	SimUpdateSocket string

	DBPath         string
	NodeConfigPath string
	PreloadPath    string
	DataDir        string

	Workers           int
	SimulatorPoolSize int
	RecentArbsSize    int

	RefreshIntervalShort time.Duration
	RefreshIntervalLong  time.Duration

	UseDBSimulator bool

	TelegramBotToken string
	TelegramChatID   string

	MetricsAddr string

	LogFile       string
	LogFileMaxMB  int
	LogFileMaxAge int
}

// Flags returns the urfave/cli flag set for the start-bot subcommand,
// one entry per field above, each readable from its SUI_ARB_* env var
// by viper after Load runs.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "optional TOML/YAML config file path"},
		&cli.StringFlag{Name: "private-key", Usage: "base64-encoded signing key"},
		&cli.StringFlag{Name: "rpc-url", Usage: "chain RPC endpoint"},
		&cli.StringFlag{Name: "ipc-path", Usage: "optional chain IPC socket path"},
		&cli.StringFlag{Name: "shio-url", Usage: "optional sealed-auction feed URL"},
		&cli.StringFlag{Name: "relay-url", Usage: "optional private-tx relay URL"},
		&cli.StringFlag{Name: "public-tx-socket", Usage: "public-tx effects feed socket path"},
		&cli.StringFlag{Name: "sim-update-socket", Usage: "simulator cache-update socket path"},
		&cli.StringFlag{Name: "db-path", Usage: "local chain database path"},
		&cli.StringFlag{Name: "node-config-path", Usage: "chain node config path"},
		&cli.StringFlag{Name: "preload-path", Usage: "simulator preload object-id manifest path"},
		&cli.StringFlag{Name: "data-dir", Value: "./data", Usage: "pool index persistence directory"},
		&cli.IntFlag{Name: "workers", Value: 8, Usage: "number of arbitrage workers"},
		&cli.IntFlag{Name: "simulator-pool-size", Value: 32, Usage: "number of pooled simulators"},
		&cli.IntFlag{Name: "recent-arbs-size", Value: 20, Usage: "per-worker recent-arbs ring buffer size"},
		&cli.DurationFlag{Name: "refresh-interval-short", Value: 200 * time.Millisecond, Usage: "replay simulator short refresh interval"},
		&cli.DurationFlag{Name: "refresh-interval-long", Value: 5 * time.Second, Usage: "replay simulator long refresh interval"},
		&cli.BoolFlag{Name: "use-db-simulator", Value: true, Usage: "use the local replica simulator instead of the deprecated remote RPC dry-run"},
		&cli.StringFlag{Name: "telegram-bot-token", Usage: "optional telemetry sink: telegram bot token"},
		&cli.StringFlag{Name: "telegram-chat-id", Usage: "optional telemetry sink: telegram chat id"},
		&cli.StringFlag{Name: "metrics-addr", Value: ":9090", Usage: "prometheus /metrics listen address"},
		&cli.StringFlag{Name: "log-file", Usage: "optional rotating log file path (empty disables file logging)"},
		&cli.IntFlag{Name: "log-file-max-mb", Value: 100, Usage: "rotate the log file after it reaches this size in megabytes"},
		&cli.IntFlag{Name: "log-file-max-age", Value: 28, Usage: "days to retain rotated log files"},
	}
}

// Load resolves a Config from CLI flags, falling back to SUI_ARB_* env
// vars and an optional config file for any flag left at its zero
// value, in that precedence order (flags > env > file > flag default).
func Load(c *cli.Context) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := c.String("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read config file %q: %w", path, err)
		}
	}

	str := func(name string) string {
		if c.IsSet(name) {
			return c.String(name)
		}
		if v.IsSet(name) {
			return v.GetString(name)
		}
		return c.String(name) // flag default
	}
	integer := func(name string) int {
		if c.IsSet(name) {
			return c.Int(name)
		}
		if v.IsSet(name) {
			return v.GetInt(name)
		}
		return c.Int(name)
	}
	duration := func(name string) time.Duration {
		if c.IsSet(name) {
			return c.Duration(name)
		}
		if v.IsSet(name) {
			return v.GetDuration(name)
		}
		return c.Duration(name)
	}
	boolean := func(name string) bool {
		if c.IsSet(name) {
			return c.Bool(name)
		}
		if v.IsSet(name) {
			return v.GetBool(name)
		}
		return c.Bool(name)
	}

	cfg := &Config{
		PrivateKey:           str("private-key"),
		RPCURL:               str("rpc-url"),
		IPCPath:              str("ipc-path"),
		ShioURL:              str("shio-url"),
		RelayURL:             str("relay-url"),
		PublicTxSocket:       str("public-tx-socket"),
		SimUpdateSocket:      str("sim-update-socket"),
		DBPath:               str("db-path"),
		NodeConfigPath:       str("node-config-path"),
		PreloadPath:          str("preload-path"),
		DataDir:              str("data-dir"),
		Workers:              integer("workers"),
		SimulatorPoolSize:    integer("simulator-pool-size"),
		RecentArbsSize:       integer("recent-arbs-size"),
		RefreshIntervalShort: duration("refresh-interval-short"),
		RefreshIntervalLong:  duration("refresh-interval-long"),
		UseDBSimulator:       boolean("use-db-simulator"),
		TelegramBotToken:     str("telegram-bot-token"),
		TelegramChatID:       str("telegram-chat-id"),
		MetricsAddr:          str("metrics-addr"),
		LogFile:              str("log-file"),
		LogFileMaxMB:         integer("log-file-max-mb"),
		LogFileMaxAge:        integer("log-file-max-age"),
	}

	if !cfg.UseDBSimulator {
		// Deprecated path (spec.md §6): still supported, but callers
		// should warn at startup rather than silently using it.
	}

	return cfg, cfg.Validate()
}

// Validate enforces the preconditions start-bot needs before wiring
// any subsystem.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("config: --rpc-url is required")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("config: --workers must be positive")
	}
	if c.SimulatorPoolSize <= 0 {
		return fmt.Errorf("config: --simulator-pool-size must be positive")
	}
	if c.RecentArbsSize <= 0 {
		return fmt.Errorf("config: --recent-arbs-size must be positive")
	}
	return nil
}
