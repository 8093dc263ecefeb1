package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"foodorder/internal/config"
	"foodorder/internal/logging"
)

var (
	// Global flags
	port     string
	dbDriver string
	dbDSN    string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "foodorder",
	Short: "Food ordering REST backend",
	Long: `foodorder serves the food ordering API: users and JWT sessions,
restaurants with their menus, and orders moving through their lifecycle.

Configuration comes from the environment (SERVER_PORT, DB_DRIVER,
DATABASE_DSN, REDIS_ADDR, JWT_SECRET, ...). Flags override it.`,
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
	rootCmd.PersistentFlags().StringVar(&port, "port", "", "HTTP port (overrides SERVER_PORT)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "postgres, mysql or sqlite (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "dsn", "", "Database DSN (overrides DATABASE_DSN)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// loadConfig reads the environment and applies flag overrides. It also
// installs the process-wide logger.
func loadConfig() (*config.Config, *slog.Logger) {
	cfg := config.Load()
	if port != "" {
		cfg.ServerPort = port
	}
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if dbDSN != "" {
		cfg.DatabaseDSN = dbDSN
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	return cfg, logger
}
