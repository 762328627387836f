package friend

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionDecline Action = "decline"
)

var (
	ErrRequestNotFound  = fmt.Errorf("friend request %w", apperr.ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrNotFriends       = fmt.Errorf("friendship %w", apperr.ErrNotFound)
	ErrAlreadyFriends   = fmt.Errorf("already friends: %w", apperr.ErrConflict)
	ErrRequestPending   = fmt.Errorf("a pending request already exists: %w", apperr.ErrConflict)
	ErrAlreadyResponded = fmt.Errorf("request already answered: %w", apperr.ErrConflict)
	ErrNotRecipient     = fmt.Errorf("only the recipient can answer a request: %w", apperr.ErrForbidden)
)

type Request struct {
	ID          uuid.UUID
	Sender      string
	Recipient   string
	Status      Status
	CreatedAt   time.Time
	RespondedAt *time.Time
}

// Requests splits a user's pending requests by direction.
type Requests struct {
	Received []*Request
	Sent     []*Request
}
