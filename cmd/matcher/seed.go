package main

import (
	"context"
	"time"

	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/database/seeder"
	"skill-swap/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo users and their skill requirements",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database, logger.Named(log, "postgres"))
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		seeders := seeder.Defaults()
		r := seeder.Runner{Seeders: seeders, Logger: logger.Named(log, "seeder")}
		if err := r.Run(ctx, db); err != nil {
			return err
		}
		log.Info("seed complete", zap.Int("seeders", len(seeders)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
