package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finwise/internal/account"
	"github.com/MrJamesThe3rd/finwise/internal/database"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, acc *account.Account, st *gamification.State) error {
	interests, err := json.Marshal(acc.Interests)
	if err != nil {
		return fmt.Errorf("encoding interests: %w", err)
	}

	limits, err := json.Marshal(st.Limits)
	if err != nil {
		return fmt.Errorf("encoding limits: %w", err)
	}

	achievements, err := json.Marshal(st.Achievements)
	if err != nil {
		return fmt.Errorf("encoding achievements: %w", err)
	}

	query := `
		INSERT INTO users (username, name, email, age, password_hash, interests, limits, achievements, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		acc.Username,
		acc.Name,
		acc.Email,
		acc.Age,
		acc.PasswordHash,
		string(interests),
		string(limits),
		string(achievements),
	).Scan(&acc.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: username, name or email already taken", account.ErrExists)
		}

		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

const selectAccountColumns = `username, name, email, age, password_hash, interests, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*account.Account, error) {
	var acc account.Account

	var interests []byte

	if err := s.Scan(&acc.Username, &acc.Name, &acc.Email, &acc.Age, &acc.PasswordHash, &interests, &acc.CreatedAt); err != nil {
		return nil, err
	}

	if len(interests) > 0 {
		if err := json.Unmarshal(interests, &acc.Interests); err != nil {
			return nil, fmt.Errorf("decoding interests of %s: %w", acc.Username, err)
		}
	}

	return &acc, nil
}

func (s *Store) get(ctx context.Context, where string, arg any) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM users WHERE ` + where

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acc, nil
}

func (s *Store) Get(ctx context.Context, username string) (*account.Account, error) {
	return s.get(ctx, "username = $1", username)
}

// FindByIdentifier prefers a username match over an email match.
func (s *Store) FindByIdentifier(ctx context.Context, identifier string) (*account.Account, error) {
	return s.get(ctx, "username = $1 OR email = $1 ORDER BY (username = $1) DESC LIMIT 1", identifier)
}

// AddInterest adds weight to each topic of the user's interest map.
func (s *Store) AddInterest(ctx context.Context, username string, topics []string, weight float64) error {
	if len(topics) == 0 {
		return nil
	}

	increments := make(map[string]float64, len(topics))
	for _, t := range topics {
		increments[t] += weight
	}

	payload, err := json.Marshal(increments)
	if err != nil {
		return fmt.Errorf("encoding interest increments: %w", err)
	}

	query := `
		UPDATE users SET interests = interests || (
			SELECT COALESCE(jsonb_object_agg(inc.key, COALESCE((interests ->> inc.key)::float8, 0) + inc.value::float8), '{}'::jsonb)
			FROM jsonb_each_text($2::jsonb) AS inc
		)
		WHERE username = $1
	`

	res, err := s.db.ExecContext(ctx, query, username, string(payload))
	if err != nil {
		return fmt.Errorf("updating interests: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if rows == 0 {
		return account.ErrNotFound
	}

	return nil
}
