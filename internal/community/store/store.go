package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finwise/internal/community"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectPostColumns = `id, username, content, keywords, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*community.Post, error) {
	var p community.Post

	var keywords []byte

	if err := s.Scan(&p.ID, &p.Username, &p.Content, &keywords, &p.CreatedAt); err != nil {
		return nil, err
	}

	p.Keywords = []string{}

	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &p.Keywords); err != nil {
			return nil, fmt.Errorf("decoding keywords of post %d: %w", p.ID, err)
		}
	}

	return &p, nil
}

func (s *Store) Create(ctx context.Context, post *community.Post) error {
	keywords := post.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	payload, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}

	query := `
		INSERT INTO community_posts (username, content, keywords, created_at)
		VALUES ($1, $2, $3::jsonb, $4)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, post.Username, post.Content, string(payload), post.CreatedAt).Scan(&post.ID); err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*community.Post, error) {
	query := `SELECT ` + selectPostColumns + ` FROM community_posts WHERE id = $1`

	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, community.ErrNotFound
		}

		return nil, fmt.Errorf("getting post: %w", err)
	}

	return post, nil
}

func (s *Store) List(ctx context.Context, limit int) ([]*community.Post, error) {
	query := `SELECT ` + selectPostColumns + ` FROM community_posts ORDER BY created_at DESC, id DESC`

	args := []any{}

	if limit > 0 {
		query += ` LIMIT $1`

		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []*community.Post

	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}

		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}

	return posts, nil
}
