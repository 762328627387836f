package account

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

var (
	ErrNotFound           = fmt.Errorf("account %w", apperr.ErrNotFound)
	ErrExists             = fmt.Errorf("account %w", apperr.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Account struct {
	Username     string
	Name         string
	Email        string
	Age          int
	PasswordHash string
	Interests    map[string]float64
	CreatedAt    time.Time
}

type CreateParams struct {
	Username string
	Name     string
	Email    string
	Age      int
	Password string
}

func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return apperr.Invalid("username is required")
	}

	if strings.TrimSpace(p.Name) == "" {
		return apperr.Invalid("name is required")
	}

	if !emailPattern.MatchString(p.Email) {
		return apperr.Invalid("a valid email is required")
	}

	if len(p.Password) < minPasswordLength {
		return apperr.Invalid("password must be at least %d characters", minPasswordLength)
	}

	if p.Age < 0 || p.Age > 130 {
		return apperr.Invalid("age must be between 0 and 130")
	}

	return nil
}
