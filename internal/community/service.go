package community

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/finwise/internal/clock"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=community
type Repository interface {
	Create(ctx context.Context, post *Post) error
	Get(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context, limit int) ([]*Post, error)
}

type KeywordExtractor interface {
	Keywords(ctx context.Context, text string) ([]string, error)
}

type InterestRecorder interface {
	AddInterest(ctx context.Context, username string, topics []string, weight float64) error
}

type Service struct {
	repo      Repository
	keywords  KeywordExtractor
	interests InterestRecorder
	clock     clock.Clock
}

func NewService(repo Repository, keywords KeywordExtractor, interests InterestRecorder, clk clock.Clock) *Service {
	return &Service{repo: repo, keywords: keywords, interests: interests, clock: clk}
}

// Create stores a post. A failing keyword collaborator leaves the post untagged.
func (s *Service) Create(ctx context.Context, username, content string) (*Post, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	keywords, err := s.keywords.Keywords(ctx, content)
	if err != nil {
		slog.Warn("keyword extraction failed, storing post untagged", "username", username, "error", err)

		keywords = []string{}
	}

	post := &Post{
		Username:  username,
		Content:   content,
		Keywords:  keywords,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return post, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Post, error) {
	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting post %d: %w", id, err)
	}

	return post, nil
}

// List returns the newest posts first. A non-positive limit lists everything.
func (s *Service) List(ctx context.Context, limit int) ([]*Post, error) {
	posts, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return posts, nil
}

// Interact adds the weight to every topic of the post in the user's profile
// and returns the topics touched.
func (s *Service) Interact(ctx context.Context, username string, in Interaction) ([]string, error) {
	post, err := s.repo.Get(ctx, in.PostID)
	if err != nil {
		return nil, fmt.Errorf("getting post %d: %w", in.PostID, err)
	}

	if err := s.interests.AddInterest(ctx, username, post.Keywords, in.Weight); err != nil {
		return nil, fmt.Errorf("recording interest: %w", err)
	}

	return post.Keywords, nil
}
