package friend

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=friend
type Repository interface {
	UserExists(ctx context.Context, username string) (bool, error)
	AreFriends(ctx context.Context, a, b string) (bool, error)
	CreateRequest(ctx context.Context, req *Request) error
	GetRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	ListPending(ctx context.Context, username string) (*Requests, error)
	// Approve marks the request approved and links both users in one transaction.
	Approve(ctx context.Context, req *Request) error
	Decline(ctx context.Context, req *Request) error
	Friends(ctx context.Context, username string) ([]string, error)
	// Remove unlinks both directions and reports whether a link existed.
	Remove(ctx context.Context, a, b string) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Send(ctx context.Context, sender, recipient string) (*Request, error) {
	recipient = strings.TrimSpace(recipient)

	if recipient == "" {
		return nil, apperr.Invalid("recipient is required")
	}

	if recipient == sender {
		return nil, apperr.Invalid("cannot send a friend request to yourself")
	}

	exists, err := s.repo.UserExists(ctx, recipient)
	if err != nil {
		return nil, fmt.Errorf("checking recipient: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, recipient)
	}

	friends, err := s.repo.AreFriends(ctx, sender, recipient)
	if err != nil {
		return nil, fmt.Errorf("checking friendship: %w", err)
	}

	if friends {
		return nil, ErrAlreadyFriends
	}

	req := &Request{
		ID:        uuid.New(),
		Sender:    sender,
		Recipient: recipient,
		Status:    StatusPending,
	}

	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *Service) Requests(ctx context.Context, username string) (*Requests, error) {
	return s.repo.ListPending(ctx, username)
}

// Respond answers a pending request. Only the recipient may answer, and only once.
func (s *Service) Respond(ctx context.Context, username string, id uuid.UUID, action Action) (*Request, error) {
	if action != ActionApprove && action != ActionDecline {
		return nil, apperr.Invalid("action must be %q or %q", ActionApprove, ActionDecline)
	}

	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Recipient != username {
		return nil, ErrNotRecipient
	}

	if req.Status != StatusPending {
		return nil, ErrAlreadyResponded
	}

	switch action {
	case ActionApprove:
		err = s.repo.Approve(ctx, req)
	case ActionDecline:
		err = s.repo.Decline(ctx, req)
	}

	if err != nil {
		return nil, fmt.Errorf("answering request: %w", err)
	}

	return req, nil
}

func (s *Service) Friends(ctx context.Context, username string) ([]string, error) {
	return s.repo.Friends(ctx, username)
}

func (s *Service) AreFriends(ctx context.Context, a, b string) (bool, error) {
	return s.repo.AreFriends(ctx, a, b)
}

func (s *Service) Remove(ctx context.Context, username, friend string) error {
	removed, err := s.repo.Remove(ctx, username, friend)
	if err != nil {
		return fmt.Errorf("removing friend: %w", err)
	}

	if !removed {
		return fmt.Errorf("%w: %s", ErrNotFriends, friend)
	}

	return nil
}
