package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"foodorder/internal/db"
	"foodorder/internal/model"
)

var resetDB bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the database schema for every model.

Examples:
  foodorder migrate                        # Apply the schema
  foodorder migrate --reset                # Drop every table first
  foodorder migrate --db-driver sqlite --dsn ./dev.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&resetDB, "reset", false, "Drop all tables before migrating")
}

func runMigrate() error {
	cfg, logger := loadConfig()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if resetDB {
		models := model.All()
		// Children first so foreign keys never block a drop.
		for i := len(models) - 1; i >= 0; i-- {
			if err := gormDB.Migrator().DropTable(models[i]); err != nil {
				logger.Warn("drop table failed", slog.Any("error", err))
			}
		}
		logger.Info("tables dropped")
	}

	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	logger.Info("migrations completed", slog.String("driver", cfg.DBDriver))
	return nil
}
