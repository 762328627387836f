// Package gamification turns ledger activity into points, streaks, achievements
// and rank. The pure rules live in streak.go, bonus.go, achievement.go and rank.go;
// Service runs them against a user's state under a per-user lock.
package gamification

import (
	"fmt"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

var ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

type AchievementID string

type BonusKind string

const (
	BonusWeekly          BonusKind = "weekly"
	BonusMonthly         BonusKind = "monthly"
	BonusTransaction     BonusKind = "transaction"
	BonusPenalty         BonusKind = "penalty"
	BonusTimelyRepayment BonusKind = "timely_repayment"
	BonusAchievement     BonusKind = "achievement"
)

// Bonus is one award waiting to be shown to the client. Points is negative for penalties.
type Bonus struct {
	Kind   BonusKind `json:"kind"`
	Points int64     `json:"points"`
	Ref    string    `json:"ref,omitempty"`
}

// Notice is a dedup slot. ID changes every time a bonus is added.
type Notice struct {
	ID      string  `json:"id,omitempty"`
	Bonuses []Bonus `json:"bonuses,omitempty"`
}

// State is the per-user gamification record.
type State struct {
	Username                  string
	Points                    int64
	TransactionCount          int
	LastWeeklyCheck           *time.Time
	LastMonthlyCheck          *time.Time
	ConsecutiveWeeklyStreaks  int
	ConsecutiveMonthlyBonuses int
	TimelyLoanRepayments      int
	Achievements              []AchievementID
	// Limits maps a debit category to a percentage of income.
	Limits map[string]float64

	StreakNotice                Notice
	LastBonusID                 string
	TransactionNotice           Notice
	LastShownTransactionBonusID string
}

// NewState returns the state of a freshly created account.
func NewState(username string) *State {
	return &State{
		Username:     username,
		Achievements: []AchievementID{},
		Limits:       DefaultLimits(),
	}
}

// DefaultLimits is the limit set every new account starts with.
func DefaultLimits() map[string]float64 {
	return map[string]float64{
		"Food & Dining":     10,
		"Transportation":    5,
		"Shopping":          5,
		"Entertainment":     5,
		"Bills & Utilities": 10,
		"Healthcare":        5,
		"Education":         20,
		"Travel":            5,
		"Other":             5,
	}
}

// AwardPoints adds a signed delta to the balance and returns the new balance.
// The balance may go negative.
func (s *State) AwardPoints(delta int64) int64 {
	s.Points += delta
	return s.Points
}

func (s *State) HasAchievement(id AchievementID) bool {
	return slices.Contains(s.Achievements, id)
}

// ValidateLimit checks a limit percentage.
func ValidateLimit(category string, percent float64) error {
	if category == "" {
		return apperr.Invalid("category is required")
	}

	if percent < 0 || percent > 100 {
		return apperr.Invalid("limit for %q must be between 0 and 100", category)
	}

	return nil
}
