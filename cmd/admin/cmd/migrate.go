package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bienestar-app/bienestar/internal/config"
	"github.com/bienestar-app/bienestar/internal/db"
	"github.com/bienestar-app/bienestar/internal/logger"
)

func MigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(db.RunMigrations)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(db.MigrateDown)
		},
	})

	return migrateCmd
}

func runMigrate(step func(*sql.DB, string) error) error {
	cfg := config.Load()
	flush := logger.Init(cfg.IsDevelopment(), cfg.SentryDSN, cfg.AppEnv)
	defer flush()

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close(database)

	return step(database.DB, cfg.DBDriver)
}
