package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mytheresa/warehouse-service/config"
)

var (
	// Global flags
	envFiles []string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "Warehouse inventory and order service",
	Long: `Warehouse keeps suppliers, the category tree, products with their stock,
customers and their orders in PostgreSQL and serves them over a JSON API.

Configuration is read from the environment, optionally seeded from .env files:
  DATABASE_URL   PostgreSQL connection URL (required)
  DB_DRIVER      pgx (default) or postgres for lib/pq
  LOG_LEVEL      silent, error, warn (default) or info
  HTTP_ADDR      listen address for serve (default :8080)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Env files to load before reading the environment (default .env)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL for SQL logging")
}

// loadConfig applies the global flags on top of the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		if err := config.CheckLogLevel(logLevel); err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}
