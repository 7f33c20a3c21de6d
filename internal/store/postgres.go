package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS speedyapply_state (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Postgres keeps the blob in a JSONB row.
type Postgres struct {
	pool *pgxpool.Pool
	key  string
}

// ConnectPostgres establishes a connection pool and creates the state table.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create state table: %w", err)
	}
	return &Postgres{pool: pool, key: stateKey}, nil
}

// WithKey returns a view of the same pool storing under another row key,
// so several users or test runs can share one table.
func (p *Postgres) WithKey(key string) *Postgres {
	return &Postgres{pool: p.pool, key: key}
}

func (p *Postgres) Load(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM speedyapply_state WHERE key = $1`, p.key,
	).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return blob, nil
}

func (p *Postgres) Save(ctx context.Context, blob []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO speedyapply_state (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		p.key, blob,
	)
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Delete removes the row for this key.
func (p *Postgres) Delete(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM speedyapply_state WHERE key = $1`, p.key)
	if err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
