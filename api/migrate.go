package main

import (
	"errors"

	"github.com/rogerio-castellano/inventory-dashboard/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables if they are missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if memory {
			return errors.New("migrate needs a database; drop --memory")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := db.Connect(cmd.Context(), cfg.Database.URL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.Migrate(cmd.Context(), database); err != nil {
			return err
		}
		logger.Info("schema applied")
		return nil
	},
}
