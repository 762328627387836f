// Package advisor wraps the text-generation collaborator: spending suggestions
// over a ledger snapshot and topic extraction for community posts.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

const recentWindow = 30 * 24 * time.Hour

//go:generate mockgen -source=service.go -destination=generator_mock.go -package=advisor
type Generator interface {
	Suggest(ctx context.Context, snap Snapshot) (*Suggestion, error)
}

type LedgerReader interface {
	List(ctx context.Context, username string, filter transaction.ListFilter) ([]*transaction.Record, error)
}

// Snapshot is the ledger view handed to the generator.
type Snapshot struct {
	Recent []*transaction.Record
	All    []*transaction.Record
}

type Service struct {
	ledger LedgerReader
	gen    Generator
	clock  clock.Clock
}

func NewService(ledger LedgerReader, gen Generator, clk clock.Clock) *Service {
	return &Service{ledger: ledger, gen: gen, clock: clk}
}

func (s *Service) Suggest(ctx context.Context, username string) (*Suggestion, error) {
	all, err := s.ledger.List(ctx, username, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	cutoff := s.clock.Now().Add(-recentWindow)
	snap := Snapshot{All: all}

	for _, rec := range all {
		if !rec.Date.Before(clock.Date(cutoff)) {
			snap.Recent = append(snap.Recent, rec)
		}
	}

	return s.gen.Suggest(ctx, snap)
}

func formatRecords(recs []*transaction.Record) string {
	if len(recs) == 0 {
		return "(none)"
	}

	var b strings.Builder

	for _, r := range recs {
		fmt.Fprintf(&b, "- %s %s %s %s", r.Date.Format(time.DateOnly), r.Type(), r.Label(), decimal.New(r.Amount, -2).StringFixed(2))

		if rp, ok := r.Details.(transaction.LoanRepayment); ok {
			fmt.Fprintf(&b, " paid_on_time=%t", rp.PaidOnTime)
		}

		b.WriteByte('\n')
	}

	return b.String()
}

func suggestionPrompt(snap Snapshot) string {
	return fmt.Sprintf(`You are a financial expert looking at the transactional records of a person.

Here are their recent transactions (last 30 days):
%s
Here are all their transactions for context:
%s
Please analyze these records and provide:
1. Praise for their good financial habits
2. Positive constructive suggestions on what they could improve

Focus more on the recent transactions (from the last month). Be encouraging and positive in your tone.
Keep your response between 150-200 words total.`, formatRecords(snap.Recent), formatRecords(snap.All))
}
