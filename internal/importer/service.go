// Package importer loads ledger history from CSV files. Debits from bank
// statements get a category from the user's learned mappings.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/encoding"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	"github.com/MrJamesThe3rd/finwise/internal/importer/csvledger"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type CategoryMatcher interface {
	Suggest(ctx context.Context, username, rawDescription string) (string, error)
}

type Ledger interface {
	Import(ctx context.Context, username string, recs []*transaction.Record) (*gamification.ImportResult, error)
}

type Service struct {
	parser  Parser
	matcher CategoryMatcher
	ledger  Ledger
}

func NewService(matcher CategoryMatcher, ledger Ledger) *Service {
	return &Service{
		parser:  csvledger.NewParser(),
		matcher: matcher,
		ledger:  ledger,
	}
}

type Result struct {
	Format     string
	Charset    encoding.Charset
	Imported   []*transaction.Record
	Duplicates []*transaction.Record
}

func (s *Service) Import(ctx context.Context, username string, r io.Reader) (*Result, error) {
	parsed, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err.Error())
	}

	recs := make([]*transaction.Record, 0, len(parsed.Entries))

	for _, e := range parsed.Entries {
		rec, err := s.toRecord(ctx, username, e)
		if err != nil {
			return nil, err
		}

		recs = append(recs, rec)
	}

	res, err := s.ledger.Import(ctx, username, recs)
	if err != nil {
		return nil, fmt.Errorf("importing %d records: %w", len(recs), err)
	}

	return &Result{
		Format:     parsed.Format,
		Charset:    parsed.Charset,
		Imported:   res.Imported,
		Duplicates: res.Duplicates,
	}, nil
}

func (s *Service) toRecord(ctx context.Context, username string, e csvledger.Entry) (*transaction.Record, error) {
	label := e.Label

	if e.Type == transaction.TypeDebit && label == "" {
		label = s.category(ctx, username, e.Description)
	}

	details, err := transaction.NewDetails(e.Type, label, &e.PaidOnTime, nil)
	if err != nil {
		return nil, err
	}

	return &transaction.Record{
		Username: username,
		Date:     e.Date,
		Amount:   e.Amount,
		Details:  details,
	}, nil
}

// category asks the matcher and falls back to DefaultCategory when it has no
// answer or fails.
func (s *Service) category(ctx context.Context, username, raw string) string {
	category, err := s.matcher.Suggest(ctx, username, raw)
	if err != nil {
		slog.Warn("category suggestion failed", "username", username, "error", err)
		return DefaultCategory
	}

	if category == "" {
		return DefaultCategory
	}

	return category
}
