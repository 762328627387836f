package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	"github.com/MrJamesThe3rd/finwise/internal/importer"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

type recordResponse struct {
	ID             int64            `json:"id"`
	Type           transaction.Type `json:"type"`
	Amount         int64            `json:"amount"`
	Date           string           `json:"date"`
	Category       string           `json:"category,omitempty"`
	Source         string           `json:"source,omitempty"`
	Lender         string           `json:"lender,omitempty"`
	PaidOnTime     *bool            `json:"paid_on_time,omitempty"`
	SplitExpenseID *int64           `json:"split_expense_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

func toResponse(rec *transaction.Record) recordResponse {
	resp := recordResponse{
		ID:        rec.ID,
		Type:      rec.Type(),
		Amount:    rec.Amount,
		Date:      rec.Date.Format(time.DateOnly),
		CreatedAt: rec.CreatedAt,
	}

	switch d := rec.Details.(type) {
	case transaction.Debit:
		resp.Category = d.Category
		resp.SplitExpenseID = d.SplitExpenseID
	case transaction.Income:
		resp.Source = d.Source
	case transaction.LoanTaken:
		resp.Lender = d.Lender
	case transaction.LoanRepayment:
		resp.Lender = d.Lender
		resp.PaidOnTime = &d.PaidOnTime
	}

	return resp
}

func toResponseList(recs []*transaction.Record) []recordResponse {
	resp := make([]recordResponse, len(recs))
	for i, rec := range recs {
		resp[i] = toResponse(rec)
	}

	return resp
}

type postResponse struct {
	Transaction recordResponse             `json:"transaction"`
	Outcome     gamification.Outcome       `json:"outcome"`
	Weekly      gamification.WeeklyResult  `json:"weekly_streak"`
	Unlocked    []gamification.Achievement `json:"new_achievements"`
	Points      int64                      `json:"points"`
	Rank        gamification.Tier          `json:"rank"`
}

func toPostResponse(res *gamification.PostResult) postResponse {
	unlocked := res.Unlocked
	if unlocked == nil {
		unlocked = []gamification.Achievement{}
	}

	return postResponse{
		Transaction: toResponse(res.Record),
		Outcome:     res.Outcome,
		Weekly:      res.Weekly,
		Unlocked:    unlocked,
		Points:      res.Points,
		Rank:        gamification.RankOf(res.Points),
	}
}

type importResponse struct {
	Format       string           `json:"format"`
	Charset      string           `json:"charset"`
	Imported     int              `json:"imported"`
	Duplicates   int              `json:"duplicates"`
	Transactions []recordResponse `json:"transactions"`
}

func toImportResponse(res *importer.Result) importResponse {
	return importResponse{
		Format:       res.Format,
		Charset:      string(res.Charset),
		Imported:     len(res.Imported),
		Duplicates:   len(res.Duplicates),
		Transactions: toResponseList(res.Imported),
	}
}
