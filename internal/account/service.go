package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/finwise/internal/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	// Create stores the account together with its initial gamification state.
	Create(ctx context.Context, acc *Account, st *gamification.State) error
	Get(ctx context.Context, username string) (*Account, error)
	// FindByIdentifier looks an account up by username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*Account, error)
}

type Service struct {
	repo Repository
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost, mainly to keep tests fast.
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

// Create registers an account with zeroed counters, no achievements, the default
// limits and a zero interest weight for every topic.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.TrimSpace(params.Email)

	if err := params.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	acc := &Account{
		Username:     params.Username,
		Name:         strings.TrimSpace(params.Name),
		Email:        params.Email,
		Age:          params.Age,
		PasswordHash: string(hash),
		Interests:    advisor.ZeroInterests(),
	}

	if err := s.repo.Create(ctx, acc, gamification.NewState(acc.Username)); err != nil {
		return nil, err
	}

	return acc, nil
}

// Authenticate checks a password against the account found by username or email.
// Unknown identifiers and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (*Account, error) {
	if identifier == "" || password == "" {
		return nil, apperr.Invalid("identifier and password are required")
	}

	acc, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return acc, nil
}

func (s *Service) Get(ctx context.Context, username string) (*Account, error) {
	return s.repo.Get(ctx, username)
}
