package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"skill-swap/internal/database/migration"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/logger"
	"skill-swap/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database, logger.Named(log, "postgres"))
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		r := migration.Runner{FS: migrations.FS, Logger: logger.Named(log, "migration")}
		if migrateStatus {
			return printMigrationStatus(ctx, cmd, r, db.SQLDB())
		}
		n, err := r.Run(ctx, db.SQLDB())
		if err != nil {
			return err
		}
		log.Info("migrations complete", zap.Int("applied", n))
		return nil
	},
}

var migrateStatus bool

func printMigrationStatus(ctx context.Context, cmd *cobra.Command, r migration.Runner, db *sql.DB) error {
	statuses, err := r.Status(ctx, db)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, s := range statuses {
		state := "pending"
		switch {
		case s.Modified:
			state = "modified"
		case s.Applied:
			state = "applied " + s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(out, "V%-4d %-40s %s\n", s.Version, s.Name, state)
	}
	return nil
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "list migrations and whether they are applied")
	rootCmd.AddCommand(migrateCmd)
}
