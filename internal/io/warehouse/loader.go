package warehouse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookdim/bookdim/pkg/config"
	"github.com/bookdim/bookdim/pkg/database"
	"github.com/bookdim/bookdim/pkg/lifecycle"
	"github.com/bookdim/bookdim/pkg/pipeline"
	"github.com/bookdim/bookdim/pkg/schema"
	"github.com/dustin/go-humanize"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type loaderImpl struct {
	operator database.Operator
	cfg      *config.Config
}

// NewLoader creates a Loader writing to the configured PostgreSQL
// warehouse through the given operator.
func NewLoader(op database.Operator, cfg *config.Config) lifecycle.Loader {
	return &loaderImpl{operator: op, cfg: cfg}
}

// Load migrates the warehouse schema and replaces dim_book and
// book_source_detail with the run's outputs. The quality metrics
// snapshot is appended, keeping the history of runs. Reloading the same
// run is idempotent for the two tables.
func (l *loaderImpl) Load(ctx context.Context, res *pipeline.Result) error {
	if l.operator.Pool() == nil {
		return fmt.Errorf("database not connected")
	}

	if err := l.migrate(); err != nil {
		return err
	}

	// The dimension is replaced wholesale. Partial updates are not
	// meaningful: survivorship is a function of the full input set.
	_, err := l.operator.Pool().Exec(ctx,
		"TRUNCATE dim_book, book_source_detail")
	if err != nil {
		return fmt.Errorf("failed to truncate warehouse tables: %w", err)
	}

	if err := l.copyBooks(ctx, res); err != nil {
		return err
	}
	if err := l.copyTrace(ctx, res); err != nil {
		return err
	}
	if err := l.insertMetrics(ctx, res); err != nil {
		return err
	}

	slog.Info("Warehouse load finished",
		"books", humanize.Comma(int64(len(res.Canonical))),
		"trace_rows", humanize.Comma(int64(len(res.Trace))),
	)
	return nil
}

// migrate creates or updates the warehouse schema using GORM
// AutoMigrate.
func (l *loaderImpl) migrate() error {
	db, err := gorm.Open(postgres.Open(dsnKeyValue(&l.cfg.Database)), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect with GORM: %w", err)
	}

	if err := schema.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
	return nil
}
