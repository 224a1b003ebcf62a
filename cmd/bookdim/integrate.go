package main

import (
	"context"
	"fmt"
	"log/slog"

	ioconfig "github.com/bookdim/bookdim/internal/io/config"
	"github.com/bookdim/bookdim/internal/io/landing"
	"github.com/bookdim/bookdim/internal/io/standard"
	"github.com/bookdim/bookdim/pkg/pipeline"
	"github.com/bookdim/bookdim/pkg/quality"
	"github.com/spf13/cobra"
)

func getIntegrateCmd() *cobra.Command {
	var (
		withSQLite bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Integrates landing sources into the standard zone",
		Long: `Integrates raw book records from all enabled landing sources into the
deduplicated standard zone.

This command:
  1. Reads every enabled source from the sources registry
  2. Normalizes records and resolves entity keys
  3. Clusters duplicates and merges them with per-field survivorship
  4. Computes the quality snapshot and checks it against thresholds
  5. Writes dim_book.parquet, book_source_detail.parquet,
     quality_metrics.json and docs/schema.md

Quality threshold violations abort the run before anything is written,
unless --force is given.

Examples:
  bookdim integrate
  bookdim integrate --sqlite
  bookdim integrate --jobs 4 --landing-dir ./landing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ioconfig.BindFlags(cmd, getConfig())
			if err != nil {
				return err
			}
			ctx := context.Background()

			ingestor := landing.NewIngestor(cfg)
			raws, err := ingestor.Read(ctx)
			if err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}

			res, err := pipeline.Integrate(ctx, cfg, raws)
			if err != nil {
				return fmt.Errorf("integration failed: %w", err)
			}

			if err := quality.Assert(res.Canonical, res.Metrics, cfg.Quality); err != nil {
				if !force {
					return fmt.Errorf("quality assertion failed: %w", err)
				}
				slog.Warn("Quality assertion failed, writing anyway", "error", err)
			}

			persister := standard.NewPersister(cfg, withSQLite)
			if err := persister.Persist(ctx, res); err != nil {
				return fmt.Errorf("failed to write standard zone: %w", err)
			}

			slog.Info("Integration complete",
				"books", res.Metrics.CanonicalRecords,
				"duplicates_resolved", res.Metrics.DuplicatesResolved,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSQLite, "sqlite", false,
		"also write a SQLite export of the standard zone")
	cmd.Flags().BoolVar(&force, "force", false,
		"write outputs even when quality thresholds are violated")
	cmd.Flags().String("landing-dir", "", "landing zone directory")
	cmd.Flags().String("standard-dir", "", "standard zone directory")
	cmd.Flags().Int("jobs", 0, "number of concurrent workers")

	return cmd
}
