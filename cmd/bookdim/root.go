package main

import (
	"fmt"
	"log/slog"

	"github.com/bookdim/bookdim/internal/io/config"
	pkgconfig "github.com/bookdim/bookdim/pkg/config"
	"github.com/bookdim/bookdim/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *pkgconfig.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookdim",
		Short: "bookdim builds a deduplicated book dimension from raw sources",
		Long: `bookdim integrates raw book records from multiple sources (Goodreads
scrapes, Google Books exports) into a single deduplicated dimension
with per-field survivorship and full traceability.

The tool provides three main phases:
  - integrate: read landing files, dedupe and merge, write the standard zone
  - load: bulk-load a finished run into the PostgreSQL warehouse
  - metrics: show the quality snapshot of the last run

Configuration precedence (highest to lowest):
  1. CLI flags (--host, --port, etc.)
  2. Environment variables (BOOKDIM_*)
  3. Config file (bookdim.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via BOOKDIM_* environment variables.
  Nested fields use underscores (database.host → BOOKDIM_DATABASE_HOST).

  Examples:
    BOOKDIM_DATABASE_HOST           PostgreSQL host
    BOOKDIM_DATABASE_PASSWORD       PostgreSQL password
    BOOKDIM_LANDING_DIR             Landing zone directory
    BOOKDIM_LOG_LEVEL               Log level (debug/info/warn/error)

  See 'go doc github.com/bookdim/bookdim/pkg/config' for complete list.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate config file on first run if it doesn't exist
			if cfgFile == "" {
				exists, err := config.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}

				if !exists {
					generatedPath, err := config.GenerateDefaultConfig()
					if err != nil {
						// Only warn, don't fail - can use defaults
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result

			slog.SetDefault(logger.New(&cfg.Log))
			return nil
		},
	}

	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./bookdim.yaml or ~/.config/bookdim/bookdim.yaml)")

	rootCmd.Flags().BoolP("version", "V", false, "version for bookdim")

	rootCmd.AddCommand(getIntegrateCmd())
	rootCmd.AddCommand(getLoadCmd())
	rootCmd.AddCommand(getMetricsCmd())
	rootCmd.AddCommand(getSourcesCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *pkgconfig.Config {
	return cfg
}
