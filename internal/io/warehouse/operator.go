// Package warehouse implements the Loader interface and PostgreSQL
// connection management for the warehouse load. This is an impure I/O
// package that implements contracts defined in pkg/.
package warehouse

import (
	"context"
	"fmt"

	"github.com/bookdim/bookdim/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxOperator implements the database.Operator interface using pgxpool
// for connection pooling.
type PgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator (without connecting).
func NewPgxOperator() *PgxOperator {
	return &PgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
func (p *PgxOperator) Connect(ctx context.Context, cfg *config.DatabaseConfig) error {
	poolConfig, err := pgxpool.ParseConfig(dsnURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *PgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool for advanced operations.
func (p *PgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// TableExists checks if a table exists in the current database.
func (p *PgxOperator) TableExists(ctx context.Context, tableName string) (bool, error) {
	if p.pool == nil {
		return false, fmt.Errorf("not connected to database")
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}

	return exists, nil
}

func dsnURL(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
}

func dsnKeyValue(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode,
	)
}
