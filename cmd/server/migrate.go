package main

import (
	"fmt"

	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/pkg/config"
	"github.com/anonto42/faithconnect/backend/pkg/logging"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the PostgreSQL schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logging.New(cfg.Env)

			db, err := config.InitDB(cfg, log)
			if err != nil {
				return err
			}
			defer db.CloseDB(log)

			if err := models.AutoMigrate(db.Postgres); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			log.Info("PostgreSQL auto-migrations completed")
			return nil
		},
	}
}
