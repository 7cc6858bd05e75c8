// Package db provides database connection helpers and the schema
// bootstrap.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

// schema is applied idempotently at startup. The single-user deployment
// has no migration history to manage.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL DEFAULT '',
	company          TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	url              TEXT NOT NULL DEFAULT '',
	summary          TEXT NOT NULL DEFAULT '',
	source           TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'new',
	posted_date      TEXT NOT NULL DEFAULT '',
	scouted_at       BIGINT NOT NULL DEFAULT 0,
	applied_date     TEXT NOT NULL DEFAULT '',
	seniority_score  TEXT,
	interview_date   BIGINT,
	interview_format TEXT,
	stage_notes      TEXT NOT NULL DEFAULT '',
	notes            TEXT NOT NULL DEFAULT '',
	tailored_cv      TEXT NOT NULL DEFAULT '',
	analysis         JSONB,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS jobs_status_idx ON jobs (status);
CREATE INDEX IF NOT EXISTS jobs_scouted_at_idx ON jobs (scouted_at DESC);

CREATE TABLE IF NOT EXISTS resume_document (
	id         INT PRIMARY KEY CHECK (id = 1),
	content    TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the tables the service needs if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
