package main

import (
	"context"
	"fmt"
	"log/slog"

	ioconfig "github.com/bookdim/bookdim/internal/io/config"
	"github.com/bookdim/bookdim/internal/io/standard"
	"github.com/bookdim/bookdim/internal/io/warehouse"
	"github.com/spf13/cobra"
)

func getLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Loads a finished run into the PostgreSQL warehouse",
		Long: `Loads the standard-zone outputs of a finished integration run into the
PostgreSQL warehouse.

This command:
  1. Reads dim_book.parquet and book_source_detail.parquet
  2. Creates or migrates the warehouse schema
  3. Replaces dim_book and book_source_detail using the COPY protocol
  4. Appends the run's quality metrics

Examples:
  bookdim load
  bookdim load --host db.example.org --database books`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ioconfig.BindFlags(cmd, getConfig())
			if err != nil {
				return err
			}
			ctx := context.Background()

			res, err := standard.ReadRun(cfg)
			if err != nil {
				return fmt.Errorf("failed to read standard zone: %w", err)
			}

			op := warehouse.NewPgxOperator()
			if err := op.Connect(ctx, &cfg.Database); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer op.Close()

			loader := warehouse.NewLoader(op, cfg)

			slog.Info("Starting warehouse load",
				"host", cfg.Database.Host,
				"database", cfg.Database.Database,
			)
			if err := loader.Load(ctx, res); err != nil {
				return fmt.Errorf("warehouse load failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().String("host", "", "PostgreSQL host")
	cmd.Flags().Int("port", 0, "PostgreSQL port")
	cmd.Flags().String("user", "", "PostgreSQL user")
	cmd.Flags().String("password", "", "PostgreSQL password")
	cmd.Flags().String("database", "", "database name")
	cmd.Flags().String("ssl-mode", "", "SSL mode (disable/require/verify-ca/verify-full)")
	cmd.Flags().String("standard-dir", "", "standard zone directory")

	return cmd
}
