package gamification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

var (
	ErrLimitExists   = fmt.Errorf("limit %w", apperr.ErrConflict)
	ErrLimitNotFound = fmt.Errorf("limit %w", apperr.ErrNotFound)
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=gamification
type Repository interface {
	Get(ctx context.Context, username string) (*State, error)
	// Begin opens a unit of work that holds the user's lock until Commit or Rollback.
	Begin(ctx context.Context, username string) (UserTx, error)
}

type UserTx interface {
	State(ctx context.Context) (*State, error)
	SaveState(ctx context.Context, st *State) error
	Append(ctx context.Context, rec *transaction.Record) error
	// Ledger returns the user's records dated within [start, end], in insertion order.
	Ledger(ctx context.Context, start, end time.Time) ([]*transaction.Record, error)
	FindDuplicates(ctx context.Context, recs []*transaction.Record) ([]*transaction.Record, error)
	Commit() error
	Rollback() error
}

type Service struct {
	repo   Repository
	clock  clock.Clock
	policy Policy
	newID  func() string
}

func NewService(repo Repository, clk clock.Clock, policy Policy) *Service {
	return &Service{
		repo:   repo,
		clock:  clk,
		policy: policy,
		newID:  uuid.NewString,
	}
}

func (s *Service) Policy() Policy {
	return s.policy
}

// update runs fn against the user's state under the user's lock and saves the
// state when fn succeeds.
func (s *Service) update(ctx context.Context, username string, fn func(utx UserTx, st *State) error) error {
	utx, err := s.repo.Begin(ctx, username)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer utx.Rollback()

	st, err := utx.State(ctx)
	if err != nil {
		return err
	}

	if err := fn(utx, st); err != nil {
		return err
	}

	if err := utx.SaveState(ctx, st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	if err := utx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// ledgerWindow loads every record the period rules can look at: the previous
// month through the end of the current one.
func ledgerWindow(ctx context.Context, utx UserTx, now time.Time) ([]*transaction.Record, error) {
	month := clock.MonthStart(now)

	ledger, err := utx.Ledger(ctx, month.AddDate(0, -1, 0), month.AddDate(0, 1, -1))
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	return ledger, nil
}

func (s *Service) checkUnlocks(st *State) []Achievement {
	if !s.policy.AchievementsEnabled {
		return nil
	}

	unlocked := CheckUnlocks(st)
	for _, a := range unlocked {
		st.noteStreakBonus(Bonus{Kind: BonusAchievement, Ref: string(a.ID)}, s.newID())
	}

	return unlocked
}

func (s *Service) Get(ctx context.Context, username string) (*State, error) {
	return s.repo.Get(ctx, username)
}

type PostResult struct {
	Record   *transaction.Record
	Outcome  Outcome
	Weekly   WeeklyResult
	Unlocked []Achievement
	Points   int64
}

// Record appends rec to the user's ledger and applies the transaction rules and
// the weekly streak check in the same unit of work.
func (s *Service) Record(ctx context.Context, username string, rec *transaction.Record) (*PostResult, error) {
	now := s.clock.Now()

	rec.Username = username
	if rec.Date.IsZero() {
		rec.Date = clock.Date(now)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	res := &PostResult{Record: rec}

	err := s.update(ctx, username, func(utx UserTx, st *State) error {
		if err := utx.Append(ctx, rec); err != nil {
			return fmt.Errorf("append: %w", err)
		}

		ledger, err := ledgerWindow(ctx, utx, now)
		if err != nil {
			return err
		}

		res.Outcome = ApplyTransactionRules(st, rec, ledger, s.policy, now, s.newID)
		res.Weekly = EvaluateWeekly(st, ledger, now, s.newID)
		res.Unlocked = s.checkUnlocks(st)
		res.Points = st.Points

		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Outcome.Penalty != 0 {
		slog.Info("limit penalty applied", "username", username, "category", res.Outcome.BreachedCategory)
	}

	return res, nil
}

type StreakCheck struct {
	Weekly     WeeklyResult  `json:"weekly"`
	Monthly    MonthlyResult `json:"monthly"`
	TotalBonus int64         `json:"total_bonus"`
	Unlocked   []Achievement `json:"unlocked"`
	Points     int64         `json:"points"`
}

func (s *Service) evaluatePeriods(ctx context.Context, utx UserTx, st *State) (*StreakCheck, error) {
	now := s.clock.Now()

	ledger, err := ledgerWindow(ctx, utx, now)
	if err != nil {
		return nil, err
	}

	check := &StreakCheck{
		Weekly:  EvaluateWeekly(st, ledger, now, s.newID),
		Monthly: EvaluateMonthly(st, ledger, now, s.newID),
	}
	check.TotalBonus = check.Weekly.Awarded + check.Monthly.Score
	check.Unlocked = s.checkUnlocks(st)
	check.Points = st.Points

	return check, nil
}

// CheckStreaks runs the weekly and monthly evaluations without consuming notices.
func (s *Service) CheckStreaks(ctx context.Context, username string) (*StreakCheck, error) {
	var check *StreakCheck

	err := s.update(ctx, username, func(utx UserTx, st *State) error {
		var err error
		check, err = s.evaluatePeriods(ctx, utx, st)

		return err
	})
	if err != nil {
		return nil, err
	}

	return check, nil
}

type Rewards struct {
	Points                    int64         `json:"points"`
	TransactionCount          int           `json:"transaction_count"`
	ConsecutiveWeeklyStreaks  int           `json:"consecutive_weekly_streaks"`
	ConsecutiveMonthlyBonuses int           `json:"consecutive_monthly_bonuses"`
	TimelyLoanRepayments      int           `json:"timely_loan_repayments"`
	Streaks                   StreakCheck   `json:"streaks"`
	NewAchievements           []Achievement `json:"new_achievements"`
	StreakBonuses             []Bonus       `json:"streak_bonuses"`
	TransactionBonuses        []Bonus       `json:"transaction_bonuses"`
	Rank                      Tier          `json:"rank"`
}

// PollRewards evaluates the periods, unlocks achievements and hands out every
// bonus the client has not been shown yet.
func (s *Service) PollRewards(ctx context.Context, username string) (*Rewards, error) {
	var rw *Rewards

	err := s.update(ctx, username, func(utx UserTx, st *State) error {
		check, err := s.evaluatePeriods(ctx, utx, st)
		if err != nil {
			return err
		}

		streak, txn := st.TakeNotices()

		rw = &Rewards{
			Points:                    st.Points,
			TransactionCount:          st.TransactionCount,
			ConsecutiveWeeklyStreaks:  st.ConsecutiveWeeklyStreaks,
			ConsecutiveMonthlyBonuses: st.ConsecutiveMonthlyBonuses,
			TimelyLoanRepayments:      st.TimelyLoanRepayments,
			Streaks:                   *check,
			NewAchievements:           check.Unlocked,
			StreakBonuses:             streak,
			TransactionBonuses:        txn,
			Rank:                      RankOf(st.Points),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rw, nil
}

type Standing struct {
	Points       int64                 `json:"points"`
	Rank         Tier                  `json:"rank"`
	Next         *RankProgress         `json:"next_rank"`
	Achievements []AchievementProgress `json:"achievements"`
	Unlocked     []Achievement         `json:"newly_unlocked"`
}

// Standing reports rank and achievement progress after an unlock check.
func (s *Service) Standing(ctx context.Context, username string) (*Standing, error) {
	var out *Standing

	err := s.update(ctx, username, func(_ UserTx, st *State) error {
		unlocked := s.checkUnlocks(st)

		out = &Standing{
			Points:       st.Points,
			Rank:         RankOf(st.Points),
			Next:         NextRank(st.Points),
			Achievements: Progress(st),
			Unlocked:     unlocked,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) Limits(ctx context.Context, username string) (map[string]float64, error) {
	st, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	return st.Limits, nil
}

func (s *Service) AddLimit(ctx context.Context, username, category string, percent float64) error {
	if err := ValidateLimit(category, percent); err != nil {
		return err
	}

	return s.update(ctx, username, func(_ UserTx, st *State) error {
		if _, ok := st.Limits[category]; ok {
			return fmt.Errorf("%w: %s", ErrLimitExists, category)
		}

		if st.Limits == nil {
			st.Limits = map[string]float64{}
		}

		st.Limits[category] = percent

		return nil
	})
}

func (s *Service) UpdateLimit(ctx context.Context, username, category string, percent float64) error {
	if err := ValidateLimit(category, percent); err != nil {
		return err
	}

	return s.update(ctx, username, func(_ UserTx, st *State) error {
		if _, ok := st.Limits[category]; !ok {
			return fmt.Errorf("%w: %s", ErrLimitNotFound, category)
		}

		st.Limits[category] = percent

		return nil
	})
}

func (s *Service) DeleteLimit(ctx context.Context, username, category string) error {
	return s.update(ctx, username, func(_ UserTx, st *State) error {
		if _, ok := st.Limits[category]; !ok {
			return fmt.Errorf("%w: %s", ErrLimitNotFound, category)
		}

		delete(st.Limits, category)

		return nil
	})
}

// ReplaceLimits swaps the whole limit map after validating every entry.
func (s *Service) ReplaceLimits(ctx context.Context, username string, limits map[string]float64) error {
	for category, percent := range limits {
		if err := ValidateLimit(category, percent); err != nil {
			return err
		}
	}

	return s.update(ctx, username, func(_ UserTx, st *State) error {
		st.Limits = limits
		return nil
	})
}

type ImportResult struct {
	Imported   []*transaction.Record
	Duplicates []*transaction.Record
}

// Import appends parsed records that are not already in the ledger. Imported
// history counts towards streaks but earns no per-transaction bonuses.
func (s *Service) Import(ctx context.Context, username string, recs []*transaction.Record) (*ImportResult, error) {
	if len(recs) == 0 {
		return &ImportResult{}, nil
	}

	for i, rec := range recs {
		rec.Username = username
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	res := &ImportResult{}

	err := s.update(ctx, username, func(utx UserTx, _ *State) error {
		existing, err := utx.FindDuplicates(ctx, recs)
		if err != nil {
			return fmt.Errorf("find duplicates: %w", err)
		}

		seen := make(map[dupKey]struct{}, len(existing))
		for _, e := range existing {
			seen[keyOf(e)] = struct{}{}
		}

		for _, rec := range recs {
			if _, dup := seen[keyOf(rec)]; dup {
				res.Duplicates = append(res.Duplicates, rec)
				continue
			}

			if err := utx.Append(ctx, rec); err != nil {
				return fmt.Errorf("append: %w", err)
			}

			res.Imported = append(res.Imported, rec)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

type dupKey struct {
	Date   string
	Amount int64
	Type   transaction.Type
	Label  string
}

func keyOf(rec *transaction.Record) dupKey {
	return dupKey{
		Date:   rec.Date.Format(time.DateOnly),
		Amount: rec.Amount,
		Type:   rec.Type(),
		Label:  rec.Label(),
	}
}
