package main

import (
	"context"

	"hiper-bot/internal/repository"
	"hiper-bot/pkg/logger"
	"hiper-bot/pkg/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the keyword analytics table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := context.Background()
		db, err := postgres.NewPool(ctx, &a.cfg.Database, a.logger)
		if err != nil {
			a.logger.Error("Failed to connect to database", zap.Error(err))
			return err
		}
		defer db.Close()

		if err := repository.NewLookupRepository(db, a.logger).EnsureSchema(ctx); err != nil {
			a.logger.Error("Migration failed", zap.Error(err))
			return err
		}
		a.logger.Info("Analytics schema ready")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
