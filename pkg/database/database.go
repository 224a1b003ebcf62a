// Package database defines the contract for PostgreSQL connection
// management. The implementation lives in internal/io/warehouse.
package database

import (
	"context"

	"github.com/bookdim/bookdim/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages the PostgreSQL connection pool used by the warehouse
// load.
type Operator interface {
	// Connect establishes a connection pool to PostgreSQL and verifies
	// it with a ping.
	Connect(ctx context.Context, cfg *config.DatabaseConfig) error

	// Close releases all database connections.
	Close() error

	// Pool returns the underlying pgxpool.Pool, or nil before Connect.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)
}
