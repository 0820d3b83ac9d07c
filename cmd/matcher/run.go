package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"skill-swap/internal/app"
	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one matching pass and print its summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, err := app.NewContainer(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := c.Close(); err != nil {
				log.Warn("closing resources", zap.Error(err))
			}
		}()

		var matches repository.MatchRepository
		if dryRun {
			log.Info("dry run, new matches are kept in memory")
			matches = repository.NewDryRunMatchRepository(c.Matches)
		}

		if cfg.Matching.RunTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Matching.RunTimeout)
			defer cancel()
		}

		summary, err := c.NewPipeline(matches, nil).Run(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewRunSummaryResponse(summary))
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "evaluate and report matches without storing them; existing matches are still read")
	rootCmd.AddCommand(runCmd)
}
