package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finwise/internal/database"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

type Store struct {
	q database.Querier
}

// New binds the store to a pool or to an open *sql.Tx.
func New(q database.Querier) *Store {
	return &Store{q: q}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads a ledger row from the scanner.
// Expected column order: id, username, date, type, amount, label, paid_on_time, split_expense_id, created_at
func scanRecord(s scanner) (*transaction.Record, error) {
	var rec transaction.Record

	var typeStr, label string

	var paidOnTime sql.NullBool

	var splitID sql.NullInt64

	if err := s.Scan(
		&rec.ID, &rec.Username, &rec.Date, &typeStr, &rec.Amount, &label,
		&paidOnTime, &splitID, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	var onTime *bool
	if paidOnTime.Valid {
		onTime = &paidOnTime.Bool
	}

	var split *int64
	if splitID.Valid {
		split = &splitID.Int64
	}

	details, err := transaction.NewDetails(transaction.Type(typeStr), label, onTime, split)
	if err != nil {
		return nil, fmt.Errorf("decoding ledger entry %d: %w", rec.ID, err)
	}

	rec.Details = details

	return &rec, nil
}

const selectRecordColumns = `
	id, username, date, type, amount, label, paid_on_time, split_expense_id, created_at
`

// flatten is the inverse of transaction.NewDetails.
func flatten(d transaction.Details) (paidOnTime *bool, splitExpenseID *int64) {
	switch v := d.(type) {
	case transaction.Debit:
		return nil, v.SplitExpenseID
	case transaction.LoanRepayment:
		return &v.PaidOnTime, nil
	}

	return nil, nil
}

func (s *Store) Append(ctx context.Context, rec *transaction.Record) error {
	if rec.Details == nil {
		return fmt.Errorf("appending ledger entry: missing details")
	}

	query := `
		INSERT INTO ledger_entries (username, date, type, amount, label, paid_on_time, split_expense_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	paidOnTime, splitID := flatten(rec.Details)

	err := s.q.QueryRowContext(ctx, query,
		rec.Username,
		rec.Date,
		rec.Type(),
		rec.Amount,
		rec.Label(),
		paidOnTime,
		splitID,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending ledger entry: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, username string, id int64) (*transaction.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM ledger_entries
		WHERE username = $1 AND id = $2`

	rec, err := scanRecord(s.q.QueryRowContext(ctx, query, username, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting ledger entry: %w", err)
	}

	return rec, nil
}

func (s *Store) List(ctx context.Context, username string, filter transaction.ListFilter) ([]*transaction.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM ledger_entries
		WHERE username = $1`

	args := []any{username}

	argIdx := 2

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Insertion order, not date order.
	query += " ORDER BY id ASC"

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var recs []*transaction.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}

	return recs, nil
}
