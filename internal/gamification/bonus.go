package gamification

import (
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

// Outcome describes what posting one record earned.
type Outcome struct {
	TransactionBonus     int64  `json:"transaction_bonus"`
	Penalty              int64  `json:"penalty"`
	TimelyRepaymentBonus int64  `json:"timely_repayment_bonus"`
	BreachedCategory     string `json:"breached_category,omitempty"`
	BonusID              string `json:"bonus_id,omitempty"`
}

func (o Outcome) Total() int64 {
	return o.TransactionBonus + o.Penalty + o.TimelyRepaymentBonus
}

// ApplyTransactionRules runs the per-record rules for rec, which must already be
// part of ledger. Only the current month of ledger is looked at.
func ApplyTransactionRules(st *State, rec *transaction.Record, ledger []*transaction.Record, policy Policy, now time.Time, newID func() string) Outcome {
	var out Outcome

	before := st.TransactionCount
	st.TransactionCount++

	penalized := false

	if debit, ok := rec.Details.(transaction.Debit); ok && policy.PenaltyEnabled {
		if percent, limited := st.Limits[debit.Category]; limited {
			start := clock.MonthStart(now)
			month := totalsBetween(ledger, start, start.AddDate(0, 1, 0))

			if overLimit(month.spent[debit.Category], month.income, percent) {
				penalized = true
				out.Penalty = PenaltyPoints
				out.BreachedCategory = debit.Category
				out.BonusID = newID()

				st.AwardPoints(PenaltyPoints)
				st.noteTransactionBonus(Bonus{Kind: BonusPenalty, Points: PenaltyPoints, Ref: debit.Category}, out.BonusID)
			}
		}
	}

	if !penalized && before < policy.FirstNBonusThreshold {
		out.TransactionBonus = TransactionBonus
		out.BonusID = newID()

		st.AwardPoints(TransactionBonus)
		st.noteTransactionBonus(Bonus{Kind: BonusTransaction, Points: TransactionBonus}, out.BonusID)
	}

	if repayment, ok := rec.Details.(transaction.LoanRepayment); ok && repayment.PaidOnTime {
		out.TimelyRepaymentBonus = TimelyRepaymentBonus
		out.BonusID = newID()

		st.AwardPoints(TimelyRepaymentBonus)
		st.TimelyLoanRepayments++
		st.noteTransactionBonus(Bonus{Kind: BonusTimelyRepayment, Points: TimelyRepaymentBonus, Ref: repayment.Lender}, out.BonusID)
	}

	return out
}
