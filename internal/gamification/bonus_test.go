package gamification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

func TestApplyTransactionRules_FirstNThreshold(t *testing.T) {
	now := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	policy := gamification.Policy{FirstNBonusThreshold: 2, PenaltyEnabled: true}

	st := gamification.NewState("alice")

	var ledger []*transaction.Record

	var got []int64

	for range 4 {
		rec := income(day(2024, 6, 10), 1000)
		ledger = append(ledger, rec)

		out := gamification.ApplyTransactionRules(st, rec, ledger, policy, now, seqIDs())
		got = append(got, out.TransactionBonus)
	}

	assert.Equal(t, []int64{10, 10, 0, 0}, got)
	assert.Equal(t, 4, st.TransactionCount)
	assert.Equal(t, int64(20), st.Points)
}

func TestApplyTransactionRules(t *testing.T) {
	now := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	june := day(2024, 6, 3)

	tests := []struct {
		name        string
		policy      gamification.Policy
		count       int
		history     []*transaction.Record
		rec         *transaction.Record
		wantOutcome gamification.Outcome
		wantPoints  int64
		wantTimely  int
	}{
		{
			name:        "DebitUnderLimit",
			policy:      gamification.DefaultPolicy(),
			history:     []*transaction.Record{income(june, 100000)},
			rec:         debit(june, "Food", 5000),
			wantOutcome: gamification.Outcome{TransactionBonus: 10, BonusID: "id-1"},
			wantPoints:  10,
		},
		{
			name:        "DebitBreachesLimit",
			policy:      gamification.DefaultPolicy(),
			history:     []*transaction.Record{income(june, 100000), debit(june, "Food", 8000)},
			rec:         debit(june, "Food", 7000),
			wantOutcome: gamification.Outcome{Penalty: -30, BreachedCategory: "Food", BonusID: "id-1"},
			wantPoints:  -30,
		},
		{
			name:        "PenaltyDisabled",
			policy:      gamification.Policy{FirstNBonusThreshold: 20},
			history:     []*transaction.Record{income(june, 100000), debit(june, "Food", 8000)},
			rec:         debit(june, "Food", 7000),
			wantOutcome: gamification.Outcome{TransactionBonus: 10, BonusID: "id-1"},
			wantPoints:  10,
		},
		{
			name:        "PreviousMonthSpendIgnored",
			policy:      gamification.DefaultPolicy(),
			history:     []*transaction.Record{income(june, 100000), debit(day(2024, 5, 30), "Food", 90000)},
			rec:         debit(june, "Food", 7000),
			wantOutcome: gamification.Outcome{TransactionBonus: 10, BonusID: "id-1"},
			wantPoints:  10,
		},
		{
			name:        "NoIncomeThisMonth",
			policy:      gamification.DefaultPolicy(),
			rec:         debit(june, "Food", 7000),
			wantOutcome: gamification.Outcome{TransactionBonus: 10, BonusID: "id-1"},
			wantPoints:  10,
		},
		{
			name:        "TimelyRepayment",
			policy:      gamification.DefaultPolicy(),
			rec:         repayment(june, 5000, true),
			wantOutcome: gamification.Outcome{TransactionBonus: 10, TimelyRepaymentBonus: 50, BonusID: "id-2"},
			wantPoints:  60,
			wantTimely:  1,
		},
		{
			name:        "TimelyRepaymentBeyondThreshold",
			policy:      gamification.DefaultPolicy(),
			count:       25,
			rec:         repayment(june, 5000, true),
			wantOutcome: gamification.Outcome{TimelyRepaymentBonus: 50, BonusID: "id-1"},
			wantPoints:  50,
			wantTimely:  1,
		},
		{
			name:        "LateRepayment",
			policy:      gamification.DefaultPolicy(),
			rec:         repayment(june, 5000, false),
			wantOutcome: gamification.Outcome{TransactionBonus: 10, BonusID: "id-1"},
			wantPoints:  10,
		},
		{
			name:        "BeyondThreshold",
			policy:      gamification.DefaultPolicy(),
			count:       20,
			rec:         income(june, 5000),
			wantOutcome: gamification.Outcome{},
			wantPoints:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := gamification.NewState("alice")
			st.Limits = map[string]float64{"Food": 10}
			st.TransactionCount = tt.count

			ledger := append(tt.history, tt.rec)

			out := gamification.ApplyTransactionRules(st, tt.rec, ledger, tt.policy, now, seqIDs())

			assert.Equal(t, tt.wantOutcome, out)
			assert.Equal(t, tt.wantPoints, st.Points)
			assert.Equal(t, tt.wantPoints, out.Total())
			assert.Equal(t, tt.count+1, st.TransactionCount)
			assert.Equal(t, tt.wantTimely, st.TimelyLoanRepayments)
		})
	}
}

func TestApplyTransactionRules_NoticeAccumulates(t *testing.T) {
	now := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	st := gamification.NewState("alice")

	rec := repayment(day(2024, 6, 1), 100, true)
	gamification.ApplyTransactionRules(st, rec, []*transaction.Record{rec}, gamification.DefaultPolicy(), now, seqIDs())

	assert.Equal(t, "id-2", st.TransactionNotice.ID)
	assert.Equal(t, []gamification.Bonus{
		{Kind: gamification.BonusTransaction, Points: 10},
		{Kind: gamification.BonusTimelyRepayment, Points: 50, Ref: "Bank"},
	}, st.TransactionNotice.Bonuses)
}
