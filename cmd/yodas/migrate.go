package main

import (
	"github.com/spf13/cobra"
	"github.com/yodaslang/yodas-api/internal/platform/sqlstore"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version]",
	Short:     "Manage the database schema",
	Long:      `Apply, roll back or inspect the embedded migrations for the configured dialect.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status", "version"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	app, err := loadApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	return sqlstore.Migrate(cmd.Context(), app.db, app.dialect, sqlstore.MigrationCommand(args[0]), app.logger)
}
