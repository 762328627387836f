package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finwise/internal/database"
	"github.com/MrJamesThe3rd/finwise/internal/friend"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectRequestColumns = `id, sender, recipient, status, created_at, responded_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (*friend.Request, error) {
	var req friend.Request

	var status string

	var responded sql.NullTime

	if err := s.Scan(&req.ID, &req.Sender, &req.Recipient, &status, &req.CreatedAt, &responded); err != nil {
		return nil, err
	}

	req.Status = friend.Status(status)

	if responded.Valid {
		req.RespondedAt = &responded.Time
	}

	return &req, nil
}

func (s *Store) UserExists(ctx context.Context, username string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}

	return exists, nil
}

func (s *Store) AreFriends(ctx context.Context, a, b string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM friendships WHERE username = $1 AND friend = $2)`
	if err := s.db.QueryRowContext(ctx, query, a, b).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking friendship: %w", err)
	}

	return exists, nil
}

func (s *Store) CreateRequest(ctx context.Context, req *friend.Request) error {
	query := `
		INSERT INTO friend_requests (id, sender, recipient, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query, req.ID, req.Sender, req.Recipient, req.Status).Scan(&req.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return friend.ErrRequestPending
		}

		return fmt.Errorf("creating friend request: %w", err)
	}

	return nil
}

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (*friend.Request, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM friend_requests WHERE id = $1`

	req, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, friend.ErrRequestNotFound
		}

		return nil, fmt.Errorf("getting friend request: %w", err)
	}

	return req, nil
}

func (s *Store) ListPending(ctx context.Context, username string) (*friend.Requests, error) {
	query := `SELECT ` + selectRequestColumns + `
		FROM friend_requests
		WHERE status = 'pending' AND (sender = $1 OR recipient = $1)
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("listing friend requests: %w", err)
	}
	defer rows.Close()

	out := &friend.Requests{}

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning friend request: %w", err)
		}

		if req.Recipient == username {
			out.Received = append(out.Received, req)
		} else {
			out.Sent = append(out.Sent, req)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friend requests: %w", err)
	}

	return out, nil
}

// answer moves a pending request to status. The pending guard in the WHERE
// clause makes a concurrent second answer fail instead of overwriting.
func answer(ctx context.Context, q database.Querier, req *friend.Request, status friend.Status) error {
	var responded time.Time

	query := `
		UPDATE friend_requests SET status = $2, responded_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING responded_at
	`

	err := q.QueryRowContext(ctx, query, req.ID, status).Scan(&responded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return friend.ErrAlreadyResponded
		}

		return fmt.Errorf("updating friend request: %w", err)
	}

	req.Status = status
	req.RespondedAt = &responded

	return nil
}

func (s *Store) Approve(ctx context.Context, req *friend.Request) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning approve tx: %w", err)
	}
	defer dbTx.Rollback()

	if err := answer(ctx, dbTx, req, friend.StatusApproved); err != nil {
		return err
	}

	link := `
		INSERT INTO friendships (username, friend, created_at)
		VALUES ($1, $2, NOW()), ($2, $1, NOW())
		ON CONFLICT DO NOTHING
	`
	if _, err := dbTx.ExecContext(ctx, link, req.Sender, req.Recipient); err != nil {
		return fmt.Errorf("linking friends: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing approve: %w", err)
	}

	return nil
}

func (s *Store) Decline(ctx context.Context, req *friend.Request) error {
	return answer(ctx, s.db, req, friend.StatusDeclined)
}

func (s *Store) Friends(ctx context.Context, username string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT friend FROM friendships WHERE username = $1 ORDER BY friend`, username)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	friends := []string{}

	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scanning friend: %w", err)
		}

		friends = append(friends, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friends: %w", err)
	}

	return friends, nil
}

func (s *Store) Remove(ctx context.Context, a, b string) (bool, error) {
	query := `
		DELETE FROM friendships
		WHERE (username = $1 AND friend = $2) OR (username = $2 AND friend = $1)
	`

	res, err := s.db.ExecContext(ctx, query, a, b)
	if err != nil {
		return false, fmt.Errorf("removing friendship: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}

	return n > 0, nil
}
