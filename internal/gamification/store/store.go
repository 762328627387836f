package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/database"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
	txstore "github.com/MrJamesThe3rd/finwise/internal/transaction/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectStateColumns = `
	username, points, transaction_count, last_weekly_check, last_monthly_check,
	consecutive_weekly_streaks, consecutive_monthly_bonuses, timely_loan_repayments,
	achievements, limits, streak_notice, last_bonus_id, transaction_notice,
	last_shown_transaction_bonus_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanState(s scanner) (*gamification.State, error) {
	var st gamification.State

	var weekly, monthly sql.NullTime

	var achievements, limits, streakNotice, txNotice []byte

	if err := s.Scan(
		&st.Username, &st.Points, &st.TransactionCount, &weekly, &monthly,
		&st.ConsecutiveWeeklyStreaks, &st.ConsecutiveMonthlyBonuses, &st.TimelyLoanRepayments,
		&achievements, &limits, &streakNotice, &st.LastBonusID, &txNotice,
		&st.LastShownTransactionBonusID,
	); err != nil {
		return nil, err
	}

	if weekly.Valid {
		st.LastWeeklyCheck = &weekly.Time
	}

	if monthly.Valid {
		st.LastMonthlyCheck = &monthly.Time
	}

	fields := []struct {
		raw  []byte
		dest any
		name string
	}{
		{achievements, &st.Achievements, "achievements"},
		{limits, &st.Limits, "limits"},
		{streakNotice, &st.StreakNotice, "streak notice"},
		{txNotice, &st.TransactionNotice, "transaction notice"},
	}

	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}

		if err := json.Unmarshal(f.raw, f.dest); err != nil {
			return nil, fmt.Errorf("decoding %s of %s: %w", f.name, st.Username, err)
		}
	}

	if st.Limits == nil {
		st.Limits = map[string]float64{}
	}

	return &st, nil
}

func getState(ctx context.Context, q database.Querier, username string, forUpdate bool) (*gamification.State, error) {
	query := `SELECT ` + selectStateColumns + ` FROM users WHERE username = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	st, err := scanState(q.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gamification.ErrUserNotFound
		}

		return nil, fmt.Errorf("getting gamification state: %w", err)
	}

	return st, nil
}

func (s *Store) Get(ctx context.Context, username string) (*gamification.State, error) {
	return getState(ctx, s.db, username, false)
}

// userLockKey maps a username onto the advisory lock space.
func userLockKey(username string) int64 {
	h := fnv.New64a()
	h.Write([]byte("user"))
	h.Write([]byte{0})
	h.Write([]byte(username))

	return int64(h.Sum64())
}

// LockUser takes the per-user advisory lock inside an open transaction. Other
// stores that write a user's ledger call it so every writer queues on the same key.
func LockUser(ctx context.Context, tx *sql.Tx, username string) error {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", userLockKey(username)); err != nil {
		return fmt.Errorf("acquiring user lock: %w", err)
	}

	return nil
}

type userTx struct {
	tx       *sql.Tx
	username string
	ledger   *txstore.Store
}

func (s *Store) Begin(ctx context.Context, username string) (gamification.UserTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning user tx: %w", err)
	}

	if err := LockUser(ctx, dbTx, username); err != nil {
		dbTx.Rollback()
		return nil, err
	}

	return &userTx{tx: dbTx, username: username, ledger: txstore.New(dbTx)}, nil
}

func (u *userTx) Commit() error   { return u.tx.Commit() }
func (u *userTx) Rollback() error { return u.tx.Rollback() }

func (u *userTx) State(ctx context.Context) (*gamification.State, error) {
	return getState(ctx, u.tx, u.username, true)
}

func (u *userTx) SaveState(ctx context.Context, st *gamification.State) error {
	achievements, err := json.Marshal(st.Achievements)
	if err != nil {
		return fmt.Errorf("encoding achievements: %w", err)
	}

	limits, err := json.Marshal(st.Limits)
	if err != nil {
		return fmt.Errorf("encoding limits: %w", err)
	}

	streakNotice, err := json.Marshal(st.StreakNotice)
	if err != nil {
		return fmt.Errorf("encoding streak notice: %w", err)
	}

	txNotice, err := json.Marshal(st.TransactionNotice)
	if err != nil {
		return fmt.Errorf("encoding transaction notice: %w", err)
	}

	query := `
		UPDATE users SET
			points = $2,
			transaction_count = $3,
			last_weekly_check = $4,
			last_monthly_check = $5,
			consecutive_weekly_streaks = $6,
			consecutive_monthly_bonuses = $7,
			timely_loan_repayments = $8,
			achievements = $9,
			limits = $10,
			streak_notice = $11,
			last_bonus_id = $12,
			transaction_notice = $13,
			last_shown_transaction_bonus_id = $14
		WHERE username = $1
	`

	res, err := u.tx.ExecContext(ctx, query,
		u.username,
		st.Points,
		st.TransactionCount,
		st.LastWeeklyCheck,
		st.LastMonthlyCheck,
		st.ConsecutiveWeeklyStreaks,
		st.ConsecutiveMonthlyBonuses,
		st.TimelyLoanRepayments,
		string(achievements),
		string(limits),
		string(streakNotice),
		st.LastBonusID,
		string(txNotice),
		st.LastShownTransactionBonusID,
	)
	if err != nil {
		return fmt.Errorf("saving gamification state: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if rows == 0 {
		return gamification.ErrUserNotFound
	}

	return nil
}

func (u *userTx) Append(ctx context.Context, rec *transaction.Record) error {
	rec.Username = u.username
	return u.ledger.Append(ctx, rec)
}

func (u *userTx) Ledger(ctx context.Context, start, end time.Time) ([]*transaction.Record, error) {
	return u.ledger.List(ctx, u.username, transaction.ListFilter{StartDate: &start, EndDate: &end})
}

func (u *userTx) FindDuplicates(ctx context.Context, recs []*transaction.Record) ([]*transaction.Record, error) {
	if len(recs) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date   string
		Amount int64
		Type   transaction.Type
		Label  string
	}

	keyOf := func(r *transaction.Record) lookupKey {
		return lookupKey{
			Date:   r.Date.Format(time.DateOnly),
			Amount: r.Amount,
			Type:   r.Type(),
			Label:  r.Label(),
		}
	}

	minDate, maxDate := recs[0].Date, recs[0].Date
	keySet := make(map[lookupKey]struct{}, len(recs))

	for _, r := range recs {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}

		if r.Date.After(maxDate) {
			maxDate = r.Date
		}

		keySet[keyOf(r)] = struct{}{}
	}

	existing, err := u.Ledger(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}

	var duplicates []*transaction.Record

	for _, rec := range existing {
		if _, found := keySet[keyOf(rec)]; found {
			duplicates = append(duplicates, rec)
		}
	}

	return duplicates, nil
}
