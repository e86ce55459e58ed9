package commands

import (
	"context"
	"fmt"
	"os"
	"time"
	"webcache/lib/configutil"
	configsqlite "webcache/lib/configutil/sqlite"
	"webcache/lib/logutil"
	"webcache/lib/telemetry"
	"webcache/lib/webcache"

	"github.com/spf13/cobra"
)

type StoreConfig struct {
	TimeoutSeconds    int               `json:"timeout_seconds" yaml:"timeout_seconds"`
	MinRequestSeconds int               `json:"min_request_seconds" yaml:"min_request_seconds"`
	TtlSeconds        int               `json:"ttl_seconds" yaml:"ttl_seconds"`
	RandomUserAgent   bool              `json:"random_user_agent" yaml:"random_user_agent"`
	DumpDir           string            `json:"dump_dir" yaml:"dump_dir"`
	Headers           map[string]string `json:"headers" yaml:"headers"`
}

type Config struct {
	Database configsqlite.Struct `json:"database" yaml:"database"`
	Store    StoreConfig         `json:"store" yaml:"store"`
}

var configPath string
var verbose bool

var tel telemetry.Telemetry

var rootCmd = &cobra.Command{
	Use:   "webcache-cli",
	Short: "webcache-cli fetches webpages through a rate-limited, sqlite-backed cache.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logutil.Setup(logutil.Config{Verbose: verbose})

		var err error
		tel, err = telemetry.SetupFromEnv(cmd.Context(), "webcache-cli")
		if err != nil {
			return fmt.Errorf("failed to setup telemetry: %w", err)
		}
		telemetry.InstrumentPerfStats(cmd.Context())
		return nil
	},
	// flushes the batched exporters, without this a short-lived process
	// drops every span and metric
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return tel.Shutdown(cmd.Context())
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "webcache.json5", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

func readConfig() (Config, error) {
	config, err := configutil.ReadConfig[Config](configPath)
	if os.IsNotExist(err) {
		config.Database.File = "cache.db"
		return config, nil
	}
	return config, err
}

func openStore(config Config) (*webcache.Store, *webcache.SqliteCache, error) {
	database, err := config.Database.OpenDB()
	if err != nil {
		return nil, nil, err
	}
	cache, err := webcache.NewSqliteCache(database)
	if err != nil {
		return nil, nil, err
	}
	store, err := webcache.NewStore(cache, webcache.Options{
		Timeout:         time.Duration(config.Store.TimeoutSeconds) * time.Second,
		RequestInterval: time.Duration(config.Store.MinRequestSeconds) * time.Second,
		TTL:             time.Duration(config.Store.TtlSeconds) * time.Second,
		Headers:         config.Store.Headers,
		RandomUserAgent: config.Store.RandomUserAgent,
		DumpDir:         config.Store.DumpDir,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, cache, nil
}
