package gamification

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

// periodTotals aggregates the part of a ledger that falls in [start, end).
type periodTotals struct {
	income   int64
	spent    map[string]int64
	activity bool
}

func totalsBetween(ledger []*transaction.Record, start, end time.Time) periodTotals {
	t := periodTotals{spent: map[string]int64{}}

	for _, rec := range ledger {
		d := clock.Date(rec.Date)
		if d.Before(start) || !d.Before(end) {
			continue
		}

		switch v := rec.Details.(type) {
		case transaction.Income:
			t.income += rec.Amount
			t.activity = true
		case transaction.Debit:
			t.spent[v.Category] += rec.Amount
			t.activity = true
		}
	}

	return t
}

// overLimit reports whether spent exceeds percent of income.
// Without income there is nothing to measure against.
func overLimit(spent, income int64, percent float64) bool {
	if income <= 0 {
		return false
	}

	limit := decimal.NewFromFloat(percent).Mul(decimal.NewFromInt(income)).Div(hundred)

	return decimal.NewFromInt(spent).GreaterThan(limit)
}

// breaches lists the limited categories that went over, sorted by name.
func (t periodTotals) breaches(limits map[string]float64) []string {
	var out []string

	for category, spent := range t.spent {
		percent, ok := limits[category]
		if !ok {
			continue
		}

		if overLimit(spent, t.income, percent) {
			out = append(out, category)
		}
	}

	slices.Sort(out)

	return out
}

type WeeklyResult struct {
	// Checked is false when the current week was already evaluated.
	Checked     bool      `json:"checked"`
	PeriodStart time.Time `json:"period_start"`
	Compliant   bool      `json:"compliant"`
	Awarded     int64     `json:"awarded"`
	Breaches    []string  `json:"breaches,omitempty"`
}

// EvaluateWeekly scores the previous Monday-aligned week at most once per week.
func EvaluateWeekly(st *State, ledger []*transaction.Record, now time.Time, newID func() string) WeeklyResult {
	start := clock.WeekStart(now)
	res := WeeklyResult{PeriodStart: start}

	if st.LastWeeklyCheck != nil && !clock.Date(*st.LastWeeklyCheck).Before(start) {
		return res
	}

	res.Checked = true

	totals := totalsBetween(ledger, start.AddDate(0, 0, -7), start)
	res.Breaches = totals.breaches(st.Limits)
	res.Compliant = totals.activity && len(res.Breaches) == 0

	if res.Compliant {
		st.AwardPoints(WeeklyBonus)
		st.ConsecutiveWeeklyStreaks++
		res.Awarded = WeeklyBonus
		st.noteStreakBonus(Bonus{Kind: BonusWeekly, Points: WeeklyBonus}, newID())
	} else {
		st.ConsecutiveWeeklyStreaks = 0
	}

	st.LastWeeklyCheck = &start

	return res
}

type MonthlyResult struct {
	Checked     bool      `json:"checked"`
	PeriodStart time.Time `json:"period_start"`
	// Score is the share of limited categories kept under their limit, 0..100.
	Score      int64    `json:"score"`
	Categories int      `json:"categories"`
	Exceeded   []string `json:"exceeded,omitempty"`
}

// EvaluateMonthly scores the previous calendar month at most once per month.
// The score is awarded as points; a perfect score extends the monthly streak.
func EvaluateMonthly(st *State, ledger []*transaction.Record, now time.Time, newID func() string) MonthlyResult {
	start := clock.MonthStart(now)
	res := MonthlyResult{PeriodStart: start}

	if st.LastMonthlyCheck != nil && !clock.Date(*st.LastMonthlyCheck).Before(start) {
		return res
	}

	res.Checked = true

	totals := totalsBetween(ledger, start.AddDate(0, -1, 0), start)
	res.Categories = len(st.Limits)
	res.Exceeded = totals.breaches(st.Limits)

	if res.Categories > 0 && totals.income > 0 {
		kept := int64(res.Categories - len(res.Exceeded))
		res.Score = decimal.NewFromInt(100 * kept).Div(decimal.NewFromInt(int64(res.Categories))).Round(0).IntPart()
	}

	if res.Score > 0 {
		st.AwardPoints(res.Score)
		st.noteStreakBonus(Bonus{Kind: BonusMonthly, Points: res.Score}, newID())
	}

	if res.Score == 100 {
		st.ConsecutiveMonthlyBonuses++
	} else {
		st.ConsecutiveMonthlyBonuses = 0
	}

	st.LastMonthlyCheck = &start

	return res
}
