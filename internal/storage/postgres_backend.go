package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultPostgresTimeout bounds every statement issued by PostgresBackend
// when no timeout is configured.
const DefaultPostgresTimeout = 5 * time.Second

// PostgresTable is the table holding documents for every namespace.
const PostgresTable = "chart_view_documents"

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS ` + PostgresTable + ` (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`
	selectSQL = `SELECT value FROM ` + PostgresTable + ` WHERE namespace = $1 AND key = $2`
	upsertSQL = `INSERT INTO ` + PostgresTable + ` (namespace, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	deleteSQL = `DELETE FROM ` + PostgresTable + ` WHERE namespace = $1 AND key = $2`
)

// pgQuerier is the subset of *pgxpool.Pool used by PostgresBackend.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresBackend implements Backend on a PostgreSQL table, for hosts that
// share chart state between machines. Documents are stored as text so a
// corrupted payload round-trips unchanged and is rejected by Store, not by
// the database.
type PostgresBackend struct {
	db        pgQuerier
	pool      *pgxpool.Pool
	namespace string
	timeout   time.Duration
}

// NewPostgresBackend connects to dsn, verifies the connection and ensures
// the documents table exists.
func NewPostgresBackend(ctx context.Context, dsn, namespace string, timeout time.Duration) (*PostgresBackend, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn cannot be empty")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	config.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	b := newPostgresBackend(pool, namespace, timeout)
	b.pool = pool
	if err := b.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

func newPostgresBackend(db pgQuerier, namespace string, timeout time.Duration) *PostgresBackend {
	if timeout <= 0 {
		timeout = DefaultPostgresTimeout
	}
	return &PostgresBackend{
		db:        db,
		namespace: namespace,
		timeout:   timeout,
	}
}

func (b *PostgresBackend) migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	if _, err := b.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create %s table: %w", PostgresTable, err)
	}
	return nil
}

// Get retrieves the document stored under key.
func (b *PostgresBackend) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	var value string
	if err := b.db.QueryRow(ctx, selectSQL, b.namespace, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return []byte(value), nil
}

// Set upserts the document stored under key.
func (b *PostgresBackend) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if _, err := b.db.Exec(ctx, upsertSQL, b.namespace, key, string(value)); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// Delete removes the document stored under key.
func (b *PostgresBackend) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if _, err := b.db.Exec(ctx, deleteSQL, b.namespace, key); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Close closes the connection pool, if the backend owns one.
func (b *PostgresBackend) Close() error {
	if b.pool != nil {
		b.pool.Close()
		b.pool = nil
	}
	return nil
}

// Ensure PostgresBackend implements Backend at compile time
var _ Backend = (*PostgresBackend)(nil)
