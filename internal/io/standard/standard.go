// Package standard implements the Persister interface for writing the
// standard zone: parquet outputs, the quality metrics snapshot, the
// generated schema documentation, and an optional SQLite export for
// local querying.
package standard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bookdim/bookdim/pkg/config"
	"github.com/bookdim/bookdim/pkg/lifecycle"
	"github.com/bookdim/bookdim/pkg/pipeline"
	"github.com/dustin/go-humanize"
)

// File names inside the standard and docs directories.
const (
	DimBookFile   = "dim_book.parquet"
	TraceFile     = "book_source_detail.parquet"
	MetricsFile   = "quality_metrics.json"
	SchemaDocFile = "schema.md"
	SQLiteFile    = "bookdim.sqlite"
)

type persisterImpl struct {
	cfg *config.Config

	// withSQLite enables the local SQLite export in addition to the
	// parquet files.
	withSQLite bool
}

// NewPersister creates a Persister writing to the configured standard
// and docs directories.
func NewPersister(cfg *config.Config, withSQLite bool) lifecycle.Persister {
	return &persisterImpl{cfg: cfg, withSQLite: withSQLite}
}

// Persist writes all run outputs. Directories are created as needed;
// existing files from a previous run are overwritten.
func (p *persisterImpl) Persist(ctx context.Context, res *pipeline.Result) error {
	for _, dir := range []string{p.cfg.Standard.Dir, p.cfg.Standard.DocsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	dimPath := filepath.Join(p.cfg.Standard.Dir, DimBookFile)
	if err := writeParquet(dimPath, res.Canonical); err != nil {
		return fmt.Errorf("failed to write %s: %w", DimBookFile, err)
	}
	slog.Info("Wrote canonical dimension",
		"file", dimPath,
		"records", humanize.Comma(int64(len(res.Canonical))),
	)

	tracePath := filepath.Join(p.cfg.Standard.Dir, TraceFile)
	if err := writeParquet(tracePath, res.Trace); err != nil {
		return fmt.Errorf("failed to write %s: %w", TraceFile, err)
	}
	slog.Info("Wrote traceability detail",
		"file", tracePath,
		"rows", humanize.Comma(int64(len(res.Trace))),
	)

	if err := p.writeMetrics(res); err != nil {
		return err
	}
	if err := p.writeSchemaDoc(res); err != nil {
		return err
	}

	if p.withSQLite {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		dbPath := filepath.Join(p.cfg.Standard.Dir, SQLiteFile)
		if err := exportSQLite(ctx, dbPath, res); err != nil {
			return fmt.Errorf("failed to export SQLite: %w", err)
		}
		slog.Info("Wrote SQLite export", "file", dbPath)
	}

	return nil
}

func (p *persisterImpl) writeMetrics(res *pipeline.Result) error {
	data, err := json.MarshalIndent(&res.Metrics, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	path := filepath.Join(p.cfg.Standard.DocsDir, MetricsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", MetricsFile, err)
	}
	slog.Info("Wrote quality metrics", "file", path)
	return nil
}
