// Package analytics projects a ledger into per-label totals over a time frame.
package analytics

import (
	"cmp"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

type TimeFrame string

const (
	Week        TimeFrame = "1week"
	Month       TimeFrame = "1month"
	ThreeMonths TimeFrame = "3months"
	SixMonths   TimeFrame = "6months"
	Year        TimeFrame = "1year"
)

var frameDays = map[TimeFrame]int{
	Week:        7,
	Month:       30,
	ThreeMonths: 90,
	SixMonths:   180,
	Year:        365,
}

// TimeFrames lists the supported frames from shortest to longest.
var TimeFrames = []TimeFrame{Week, Month, ThreeMonths, SixMonths, Year}

// ParseTimeFrame falls back to one month for unknown values.
func ParseTimeFrame(s string) TimeFrame {
	if _, ok := frameDays[TimeFrame(s)]; ok {
		return TimeFrame(s)
	}

	return Month
}

// Range returns the inclusive date range of f ending on the day of now.
func (f TimeFrame) Range(now time.Time) (start, end time.Time) {
	end = clock.Date(now)
	return end.AddDate(0, 0, -frameDays[ParseTimeFrame(string(f))]), end
}

type Group struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type Breakdown struct {
	Groups []Group `json:"groups"`
	Total  int64   `json:"total"`
}

type Summary struct {
	TimeFrame  TimeFrame `json:"time_frame"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Income     Breakdown `json:"income"`
	Expenses   Breakdown `json:"expenses"`
	LoansTaken Breakdown `json:"loans_taken"`
	Repayments Breakdown `json:"repayments"`
	// Net is income minus expenses and repayments plus loans taken.
	Net int64 `json:"net_balance"`
}

type accumulator map[string]int64

func (a accumulator) breakdown() Breakdown {
	b := Breakdown{Groups: make([]Group, 0, len(a))}

	for label, amount := range a {
		b.Groups = append(b.Groups, Group{Label: label, Amount: amount})
		b.Total += amount
	}

	slices.SortFunc(b.Groups, func(x, y Group) int {
		if c := cmp.Compare(y.Amount, x.Amount); c != 0 {
			return c
		}

		return cmp.Compare(x.Label, y.Label)
	})

	return b
}

// Summarize totals the records dated within [start, end].
func Summarize(records []*transaction.Record, frame TimeFrame, start, end time.Time) Summary {
	acc := map[transaction.Type]accumulator{
		transaction.TypeIncome:        {},
		transaction.TypeDebit:         {},
		transaction.TypeLoanTaken:     {},
		transaction.TypeLoanRepayment: {},
	}

	for _, rec := range records {
		d := clock.Date(rec.Date)
		if d.Before(start) || d.After(end) {
			continue
		}

		if a, ok := acc[rec.Type()]; ok {
			a[rec.Label()] += rec.Amount
		}
	}

	s := Summary{
		TimeFrame:  frame,
		StartDate:  start,
		EndDate:    end,
		Income:     acc[transaction.TypeIncome].breakdown(),
		Expenses:   acc[transaction.TypeDebit].breakdown(),
		LoansTaken: acc[transaction.TypeLoanTaken].breakdown(),
		Repayments: acc[transaction.TypeLoanRepayment].breakdown(),
	}

	s.Net = s.Income.Total - s.Expenses.Total - s.Repayments.Total + s.LoansTaken.Total

	return s
}
