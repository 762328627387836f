package analytics

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

type LedgerReader interface {
	List(ctx context.Context, username string, filter transaction.ListFilter) ([]*transaction.Record, error)
}

type Service struct {
	ledger LedgerReader
	clock  clock.Clock
}

func NewService(ledger LedgerReader, clk clock.Clock) *Service {
	return &Service{ledger: ledger, clock: clk}
}

func (s *Service) Summary(ctx context.Context, username string, frame TimeFrame) (*Summary, error) {
	frame = ParseTimeFrame(string(frame))
	start, end := frame.Range(s.clock.Now())

	records, err := s.ledger.List(ctx, username, transaction.ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	summary := Summarize(records, frame, start, end)

	return &summary, nil
}
