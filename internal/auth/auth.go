// Package auth issues and verifies the bearer tokens that identify a user on
// every authenticated route.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
)

var (
	ErrInvalidToken = fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
	ErrMissingToken = fmt.Errorf("missing bearer token: %w", apperr.ErrUnauthorized)
	errNoSecret     = errors.New("token secret is empty")
)

const issuer = "finwise"

type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for username.
func (t *Tokens) Issue(username string) (string, time.Time, error) {
	if len(t.secret) == 0 {
		return "", time.Time{}, errNoSecret
	}

	now := t.now()
	expires := now.Add(t.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return signed, expires, nil
}

// Parse verifies a token and returns its subject.
func (t *Tokens) Parse(token string) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.Join(ErrInvalidToken, errNoSecret)
	}

	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

type ctxKey struct{}

func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ctxKey{}, username)
}

// Username returns the authenticated user stored by Middleware.
func Username(ctx context.Context) string {
	u, _ := ctx.Value(ctxKey{}).(string)
	return u
}

// Middleware rejects requests without a valid bearer token.
func (t *Tokens) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			render.Error(w, r, ErrMissingToken)
			return
		}

		username, err := t.Parse(token)
		if err != nil {
			render.Error(w, r, ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
	})
}
