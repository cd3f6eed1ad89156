// Package repository provides database access layer.
// Each entity type has its own DAO bound to a Querier, so the same data
// access methods run against the pool or inside an open transaction.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations the DAOs need. It is satisfied
// by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository bundles the per-entity DAOs over one Querier. A pool-backed
// Repository serves plain reads; InTx presents a transaction-bound view
// with the same API.
type Repository struct {
	pool   *pgxpool.Pool
	users  *UserDAO
	photos *PhotoDAO
}

// New creates a pool-backed Repository.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		pool:   pool,
		users:  NewUserDAO(pool),
		photos: NewPhotoDAO(pool),
	}, nil
}

// Users returns the user DAO.
func (r *Repository) Users() *UserDAO {
	return r.users
}

// Photos returns the photo DAO.
func (r *Repository) Photos() *PhotoDAO {
	return r.photos
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return nil
	}
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer going through the DAOs.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}
