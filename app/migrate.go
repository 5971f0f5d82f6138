package main

import (
	"errors"

	"github.com/spf13/cobra"

	"ereport-admin/pkg/config"
	"ereport-admin/pkg/database/postgresql"
	applogger "ereport-admin/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции журнала аудита к DATABASE_URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.New()
			logger := applogger.NewLogger(cfg.LogLevel)
			defer func() { _ = logger.Sync() }()

			if cfg.Postgres.DSN == "" {
				return errors.New("DATABASE_URL не задан")
			}
			pool, err := postgresql.ConnectDB(cmd.Context(), cfg.Postgres.DSN, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgresql.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			logger.Info("Миграции применены")
			return nil
		},
	}
}
