package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-daily/internal/database"
	"github.com/vancomm/minesweeper-daily/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Database.Configured() {
			return errors.New("no database configured, set DATABASE_URL or POSTGRES_*")
		}
		version, dirty, err := database.Migrate(cfg.Database, migrations.FS)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"version": version,
			"dirty":   dirty,
		}).Info("migration successful")
		return nil
	},
}
