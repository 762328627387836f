package transaction

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Append(ctx context.Context, rec *Record) error
	Get(ctx context.Context, username string, id int64) (*Record, error)
	List(ctx context.Context, username string, filter ListFilter) ([]*Record, error)
}

type ListFilter struct {
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
}

// Service is the read side of the ledger. Appends go through the gamification
// engine so that rewards are evaluated under the same per-user lock.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, username string, filter ListFilter) ([]*Record, error) {
	return s.repo.List(ctx, username, filter)
}

func (s *Service) Get(ctx context.Context, username string, id int64) (*Record, error) {
	return s.repo.Get(ctx, username, id)
}
