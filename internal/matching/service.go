// Package matching remembers which category a user files a bank description
// under, so later imports can categorise similar rows on their own.
package matching

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

const minPatternLength = 3

var ErrNotFound = fmt.Errorf("mapping %w", apperr.ErrNotFound)

type Mapping struct {
	ID        int64
	Pattern   string
	Category  string
	CreatedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the category of the longest pattern contained in
	// rawDescription, or "" when none matches.
	FindMatch(ctx context.Context, username, rawDescription string) (string, error)
	CreateMapping(ctx context.Context, username, rawPattern, category string) error
	ListMappings(ctx context.Context, username string) ([]*Mapping, error)
	// DeleteMapping returns ErrNotFound when username owns no mapping with id.
	DeleteMapping(ctx context.Context, username string, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the learned category for rawDescription, or "" if none.
func (s *Service) Suggest(ctx context.Context, username, rawDescription string) (string, error) {
	raw := strings.TrimSpace(rawDescription)
	if raw == "" {
		return "", nil
	}

	category, err := s.repo.FindMatch(ctx, username, raw)
	if err != nil {
		return "", fmt.Errorf("finding match: %w", err)
	}

	return category, nil
}

// Learn remembers that descriptions containing rawPattern belong to category.
func (s *Service) Learn(ctx context.Context, username, rawPattern, category string) error {
	pattern := strings.TrimSpace(rawPattern)
	category = strings.TrimSpace(category)

	if len([]rune(pattern)) < minPatternLength {
		return apperr.Invalid("pattern must be at least %d characters", minPatternLength)
	}

	if category == "" {
		return apperr.Invalid("category is required")
	}

	if err := s.repo.CreateMapping(ctx, username, pattern, category); err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}

func (s *Service) Mappings(ctx context.Context, username string) ([]*Mapping, error) {
	mappings, err := s.repo.ListMappings(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}

	return mappings, nil
}

func (s *Service) Forget(ctx context.Context, username string, id int64) error {
	if err := s.repo.DeleteMapping(ctx, username, id); err != nil {
		return fmt.Errorf("deleting mapping %d: %w", id, err)
	}

	return nil
}
