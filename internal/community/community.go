// Package community holds user posts tagged with advisor topics. Interacting
// with a post feeds its topics into the reader's interest profile.
package community

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

const maxContentLength = 2000

var ErrNotFound = fmt.Errorf("post %w", apperr.ErrNotFound)

type Post struct {
	ID        int64     `json:"post_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

// Interaction weights a reader's reaction to a post. Negative weights are
// allowed and lower interest.
type Interaction struct {
	PostID int64
	Weight float64
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)

	if content == "" {
		return "", apperr.Invalid("content is required")
	}

	if utf8.RuneCountInString(content) > maxContentLength {
		return "", apperr.Invalid("content must be at most %d characters", maxContentLength)
	}

	return content, nil
}
