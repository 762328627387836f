package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finwise/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindMatch prefers the longest, then the newest, pattern. Patterns are
// matched case-insensitively as substrings.
func (s *Store) FindMatch(ctx context.Context, username, rawDescription string) (string, error) {
	query := `
		SELECT category
		FROM category_mappings
		WHERE username = $1
		  AND POSITION(LOWER(raw_pattern) IN LOWER($2)) > 0
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, username, rawDescription).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return category, nil
}

func (s *Store) CreateMapping(ctx context.Context, username, rawPattern, category string) error {
	query := `
		INSERT INTO category_mappings (username, raw_pattern, category, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := s.db.ExecContext(ctx, query, username, rawPattern, category); err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}

func (s *Store) ListMappings(ctx context.Context, username string) ([]*matching.Mapping, error) {
	query := `
		SELECT id, raw_pattern, category, created_at
		FROM category_mappings
		WHERE username = $1
		ORDER BY category, raw_pattern
	`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("querying mappings: %w", err)
	}
	defer rows.Close()

	var out []*matching.Mapping

	for rows.Next() {
		var m matching.Mapping
		if err := rows.Scan(&m.ID, &m.Pattern, &m.Category, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}

		out = append(out, &m)
	}

	return out, rows.Err()
}

func (s *Store) DeleteMapping(ctx context.Context, username string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM category_mappings WHERE id = $1 AND username = $2`, id, username)
	if err != nil {
		return fmt.Errorf("deleting mapping: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if n == 0 {
		return matching.ErrNotFound
	}

	return nil
}
