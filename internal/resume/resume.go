// Package resume persists the base résumé as a singleton document.
// Job-scoped tailored variants live on the job record itself (kanban).
package resume

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads and writes the singleton résumé row.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a configured Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get returns the résumé content, empty when none has been saved yet.
func (s *Store) Get(ctx context.Context) (string, error) {
	var content string
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(
		   (SELECT content FROM resume_document WHERE id = 1), '')`,
	).Scan(&content)
	if err != nil {
		return "", fmt.Errorf("get resume: %w", err)
	}
	return content, nil
}

// Set replaces the résumé content.
func (s *Store) Set(ctx context.Context, content string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO resume_document (id, content, updated_at)
		 VALUES (1, $1, NOW())
		 ON CONFLICT (id) DO UPDATE
		 SET content = EXCLUDED.content, updated_at = NOW()`,
		content)
	if err != nil {
		return fmt.Errorf("set resume: %w", err)
	}
	return nil
}
