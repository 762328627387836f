package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/MrJamesThe3rd/finwise/internal/database"
	gamestore "github.com/MrJamesThe3rd/finwise/internal/gamification/store"
	"github.com/MrJamesThe3rd/finwise/internal/split"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
	txstore "github.com/MrJamesThe3rd/finwise/internal/transaction/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create writes the expense, its participants and every member's posting in one
// transaction. Member locks are taken in name order so two splits over the same
// people cannot deadlock.
func (s *Store) Create(ctx context.Context, exp *split.Expense, postings []*transaction.Record) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning split tx: %w", err)
	}
	defer dbTx.Rollback()

	members := exp.Members()
	slices.Sort(members)

	for _, m := range members {
		if err := gamestore.LockUser(ctx, dbTx, m); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO split_expenses (created_by, description, total_amount, amount_per_person, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query, exp.CreatedBy, exp.Description, exp.TotalAmount, exp.AmountPerPerson).
		Scan(&exp.ID, &exp.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting split expense: %w", err)
	}

	participantQuery := `
		INSERT INTO split_participants (expense_id, username, amount_owed, position)
		VALUES ($1, $2, $3, $4)
	`

	for i, p := range exp.Participants {
		if _, err := dbTx.ExecContext(ctx, participantQuery, exp.ID, p, exp.Balances[p], i); err != nil {
			return fmt.Errorf("inserting participant %s: %w", p, err)
		}
	}

	ledger := txstore.New(dbTx)

	for _, rec := range postings {
		if d, ok := rec.Details.(transaction.Debit); ok {
			d.SplitExpenseID = &exp.ID
			rec.Details = d
		}

		if err := ledger.Append(ctx, rec); err != nil {
			return fmt.Errorf("posting share to %s: %w", rec.Username, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing split expense: %w", err)
	}

	return nil
}

const selectExpenseColumns = `id, created_by, description, total_amount, amount_per_person, settled, settled_at, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (*split.Expense, error) {
	var e split.Expense

	var settledAt sql.NullTime

	if err := s.Scan(&e.ID, &e.CreatedBy, &e.Description, &e.TotalAmount, &e.AmountPerPerson, &e.Settled, &settledAt, &e.CreatedAt); err != nil {
		return nil, err
	}

	if settledAt.Valid {
		e.SettledAt = &settledAt.Time
	}

	e.Balances = map[string]int64{}

	return &e, nil
}

// attachParticipants fills Participants and Balances for every expense.
func attachParticipants(ctx context.Context, q database.Querier, expenses []*split.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[int64]*split.Expense, len(expenses))
	ids := make([]int64, 0, len(expenses))

	for _, e := range expenses {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}

	query := `
		SELECT expense_id, username, amount_owed
		FROM split_participants
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, position
	`

	rows, err := q.QueryContext(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, owed int64

		var username string

		if err := rows.Scan(&id, &username, &owed); err != nil {
			return fmt.Errorf("scanning participant: %w", err)
		}

		e := byID[id]
		e.Participants = append(e.Participants, username)
		e.Balances[username] = owed
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating participants: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*split.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM split_expenses WHERE id = $1`

	exp, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, split.ErrNotFound
		}

		return nil, fmt.Errorf("getting split expense: %w", err)
	}

	if err := attachParticipants(ctx, s.db, []*split.Expense{exp}); err != nil {
		return nil, err
	}

	return exp, nil
}

func (s *Store) list(ctx context.Context, where string, username string) ([]*split.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM split_expenses WHERE ` + where + ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("listing split expenses: %w", err)
	}
	defer rows.Close()

	var out []*split.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning split expense: %w", err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating split expenses: %w", err)
	}

	if err := attachParticipants(ctx, s.db, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Store) ListCreated(ctx context.Context, username string) ([]*split.Expense, error) {
	return s.list(ctx, "created_by = $1", username)
}

func (s *Store) ListInvolved(ctx context.Context, username string) ([]*split.Expense, error) {
	return s.list(ctx, "id IN (SELECT expense_id FROM split_participants WHERE username = $1)", username)
}

func (s *Store) MarkSettled(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE split_expenses SET settled = TRUE, settled_at = NOW() WHERE id = $1 AND NOT settled`, id)
	if err != nil {
		return false, fmt.Errorf("settling split expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}

	return n == 1, nil
}
