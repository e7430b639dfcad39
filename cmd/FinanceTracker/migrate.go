package main

import (
	"errors"
	"fmt"

	"github.com/sebuszqo/FinanceTracker/internal/config"
	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd, func(mg *database.Migrator) error {
			return mg.Up()
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return withMigrator(cmd, func(mg *database.Migrator) error {
			return mg.Down(steps)
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)

	migrateDownCmd.Flags().Int("steps", 1, "number of migrations to roll back")
}

func withMigrator(cmd *cobra.Command, run func(*database.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBConnectionString == "" {
		return errors.New("missing DB_CONNECTION_STRING")
	}

	mg, err := database.NewMigrator(cfg.DBConnectionString)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := run(mg); err != nil {
		return err
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", version, dirty)
	return nil
}
