// Package split manages shared expenses between friends. Creating one posts a
// debit to every member's ledger in the same database transaction as the
// expense itself.
package split

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=split
type Repository interface {
	// Create stores the expense and appends postings atomically. Postings get
	// the new expense id before they are written.
	Create(ctx context.Context, exp *Expense, postings []*transaction.Record) error
	Get(ctx context.Context, id int64) (*Expense, error)
	ListCreated(ctx context.Context, username string) ([]*Expense, error)
	ListInvolved(ctx context.Context, username string) ([]*Expense, error)
	// MarkSettled flips settled once and reports whether it did.
	MarkSettled(ctx context.Context, id int64) (bool, error)
}

type FriendChecker interface {
	AreFriends(ctx context.Context, a, b string) (bool, error)
}

type Service struct {
	repo    Repository
	friends FriendChecker
	clock   clock.Clock
}

func NewService(repo Repository, friends FriendChecker, clk clock.Clock) *Service {
	return &Service{repo: repo, friends: friends, clock: clk}
}

func (s *Service) validate(ctx context.Context, creator string, params CreateParams) error {
	if params.Amount <= 0 {
		return apperr.Invalid("amount must be positive")
	}

	if len(params.Participants) == 0 {
		return apperr.Invalid("at least one participant is required")
	}

	seen := make(map[string]struct{}, len(params.Participants))

	for _, p := range params.Participants {
		if p == "" {
			return apperr.Invalid("participant username is required")
		}

		if p == creator {
			return apperr.Invalid("the creator is always part of the split")
		}

		if _, dup := seen[p]; dup {
			return apperr.Invalid("participant %q listed twice", p)
		}

		seen[p] = struct{}{}

		ok, err := s.friends.AreFriends(ctx, creator, p)
		if err != nil {
			return fmt.Errorf("checking friendship with %s: %w", p, err)
		}

		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFriend, p)
		}
	}

	return nil
}

func (s *Service) Create(ctx context.Context, creator string, params CreateParams) (*Expense, error) {
	participants := make([]string, len(params.Participants))
	for i, p := range params.Participants {
		participants[i] = strings.TrimSpace(p)
	}

	params.Participants = participants

	if err := s.validate(ctx, creator, params); err != nil {
		return nil, err
	}

	share := PerPerson(params.Amount, len(params.Participants)+1)
	if share <= 0 {
		return nil, apperr.Invalid("amount is too small to split between %d people", len(params.Participants)+1)
	}

	exp := &Expense{
		CreatedBy:       creator,
		Description:     strings.TrimSpace(params.Description),
		TotalAmount:     params.Amount,
		AmountPerPerson: share,
		Participants:    slices.Clone(params.Participants),
		Balances:        make(map[string]int64, len(params.Participants)),
	}

	for _, p := range exp.Participants {
		exp.Balances[p] = share
	}

	today := clock.Date(s.clock.Now())

	postings := make([]*transaction.Record, 0, len(exp.Participants)+1)
	for _, member := range exp.Members() {
		postings = append(postings, &transaction.Record{
			Username: member,
			Date:     today,
			Amount:   share,
			Details:  transaction.Debit{Category: transaction.SplitCategory},
		})
	}

	if err := s.repo.Create(ctx, exp, postings); err != nil {
		return nil, fmt.Errorf("creating split expense: %w", err)
	}

	return exp, nil
}

func (s *Service) List(ctx context.Context, username string) (*Listing, error) {
	created, err := s.repo.ListCreated(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing created expenses: %w", err)
	}

	involved, err := s.repo.ListInvolved(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing involved expenses: %w", err)
	}

	owedToYou, youOwe := Aggregate(username, created, involved)

	return &Listing{
		Created:   created,
		Involved:  involved,
		OwedToYou: owedToYou,
		YouOwe:    youOwe,
	}, nil
}

// Settle excuses the balances of an expense. Posted ledger records stay as they are.
func (s *Service) Settle(ctx context.Context, id int64, requester string) (*Expense, error) {
	exp, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if exp.CreatedBy != requester {
		return nil, ErrNotCreator
	}

	if exp.Settled {
		return nil, ErrAlreadySettled
	}

	flipped, err := s.repo.MarkSettled(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("settling expense: %w", err)
	}

	if !flipped {
		return nil, ErrAlreadySettled
	}

	now := s.clock.Now()
	exp.Settled = true
	exp.SettledAt = &now

	return exp, nil
}
