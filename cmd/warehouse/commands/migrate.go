package commands

import (
	"github.com/spf13/cobra"

	"github.com/mytheresa/warehouse-service/cmd/warehouse/output"
	"github.com/mytheresa/warehouse-service/database"
	"github.com/mytheresa/warehouse-service/models"
)

// migrateCmd creates or updates the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update every table, index, foreign key and check constraint
used by the service. Running it again on an up to date database is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		output.Error(out, "%v", err)
		return err
	}
	db, err := database.Open(cfg)
	if err != nil {
		output.Error(out, "%v", err)
		return err
	}
	defer database.Close(db)

	output.Muted(out, "driver %s", cfg.DBDriver)
	if err := database.Migrate(db); err != nil {
		output.Error(out, "migration failed: %v", err)
		return err
	}
	output.Success(out, "schema up to date (%d tables)", len(models.All()))
	return nil
}
