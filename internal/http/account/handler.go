package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/account"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
)

type Handler struct {
	svc    *account.Service
	tokens *auth.Tokens
}

func NewHandler(svc *account.Service, tokens *auth.Tokens) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// PublicRoutes are mounted without authentication.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/accounts", h.create)
	r.Post("/sessions", h.signIn)
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
}

type createAccountRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Age      int    `json:"age"`
	Password string `json:"password" validate:"required"`
}

type accountResponse struct {
	Username  string             `json:"username"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Age       int                `json:"age"`
	Interests map[string]float64 `json:"interests"`
	CreatedAt time.Time          `json:"created_at"`
}

func toResponse(acc *account.Account) accountResponse {
	return accountResponse{
		Username:  acc.Username,
		Name:      acc.Name,
		Email:     acc.Email,
		Age:       acc.Age,
		Interests: acc.Interests,
		CreatedAt: acc.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	acc, err := h.svc.Create(r.Context(), account.CreateParams{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		Password: req.Password,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(acc))
}

type signInRequest struct {
	// Identifier is a username or an email.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   accountResponse `json:"account"`
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	acc, err := h.svc.Authenticate(r.Context(), req.Identifier, req.Password)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	token, expires, err := h.tokens.Issue(acc.Username)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, sessionResponse{Token: token, ExpiresAt: expires, Account: toResponse(acc)})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.Get(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(acc))
}
