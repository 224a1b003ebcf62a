package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bookdim/bookdim/internal/io/standard"
	"github.com/bookdim/bookdim/pkg/quality"
	"github.com/spf13/cobra"
)

func getMetricsCmd() *cobra.Command {
	var recompute bool

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Shows the quality snapshot of the last run",
		Long: `Shows the quality metrics snapshot written by the last integration run:
record counts, per-field completeness, ISBN validity, normalization
failures and distribution by language and source.

With --recompute, the snapshot is re-derived from the standard-zone
parquet files instead of read from quality_metrics.json. Auditing is
idempotent, so both agree for an untouched run; a mismatch means the
files were edited after the run. Raw-record and normalization-failure
counts are only known at integration time and are carried over from
the stored snapshot.

Examples:
  bookdim metrics
  bookdim metrics | jq .completeness
  bookdim metrics --recompute`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			path := filepath.Join(cfg.Standard.DocsDir, standard.MetricsFile)

			if recompute {
				res, err := standard.ReadRun(cfg)
				if err != nil {
					return fmt.Errorf("failed to read standard zone: %w", err)
				}
				m := quality.Audit(
					res.Metrics.RawRecords,
					res.Canonical,
					res.Trace,
					res.Metrics.NormalizationFailures,
					time.Now().UTC(),
				)
				data, err := json.MarshalIndent(&m, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal metrics: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf(
						"no metrics found at %s; run 'bookdim integrate' first", path,
					)
				}
				return fmt.Errorf("failed to read metrics: %w", err)
			}

			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&recompute, "recompute", false,
		"re-derive the snapshot from the standard-zone files")

	return cmd
}
