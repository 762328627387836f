package gamification_test

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func debit(date time.Time, category string, cents int64) *transaction.Record {
	return &transaction.Record{Date: date, Amount: cents, Details: transaction.Debit{Category: category}}
}

func income(date time.Time, cents int64) *transaction.Record {
	return &transaction.Record{Date: date, Amount: cents, Details: transaction.Income{Source: "Salary"}}
}

func repayment(date time.Time, cents int64, onTime bool) *transaction.Record {
	return &transaction.Record{Date: date, Amount: cents, Details: transaction.LoanRepayment{Lender: "Bank", PaidOnTime: onTime}}
}

// seqIDs returns a deterministic id source.
func seqIDs() func() string {
	n := 0

	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
