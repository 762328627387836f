package split

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
	"github.com/MrJamesThe3rd/finwise/internal/split"
)

type Handler struct {
	svc *split.Service
}

func NewHandler(svc *split.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{id}/settle", h.settle)
}

type expenseResponse struct {
	ID              int64            `json:"id"`
	CreatedBy       string           `json:"created_by"`
	Description     string           `json:"description"`
	TotalAmount     int64            `json:"total_amount"`
	AmountPerPerson int64            `json:"amount_per_person"`
	Participants    []string         `json:"participants"`
	Balances        map[string]int64 `json:"balances"`
	Settled         bool             `json:"settled"`
	SettledAt       *time.Time       `json:"settled_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func toResponse(e *split.Expense) expenseResponse {
	return expenseResponse{
		ID:              e.ID,
		CreatedBy:       e.CreatedBy,
		Description:     e.Description,
		TotalAmount:     e.TotalAmount,
		AmountPerPerson: e.AmountPerPerson,
		Participants:    e.Participants,
		Balances:        e.Balances,
		Settled:         e.Settled,
		SettledAt:       e.SettledAt,
		CreatedAt:       e.CreatedAt,
	}
}

func toResponseList(es []*split.Expense) []expenseResponse {
	out := make([]expenseResponse, len(es))
	for i, e := range es {
		out[i] = toResponse(e)
	}

	return out
}

type listingResponse struct {
	Created   []expenseResponse `json:"created"`
	Involved  []expenseResponse `json:"involved"`
	OwedToYou map[string]int64  `json:"owed_to_you"`
	YouOwe    map[string]int64  `json:"you_owe"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.List(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, listingResponse{
		Created:   toResponseList(l.Created),
		Involved:  toResponseList(l.Involved),
		OwedToYou: l.OwedToYou,
		YouOwe:    l.YouOwe,
	})
}

type createRequest struct {
	// Amount is in cents.
	Amount       int64    `json:"amount" validate:"gt=0"`
	Description  string   `json:"description" validate:"required"`
	Participants []string `json:"participants" validate:"required,min=1,dive,required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	exp, err := h.svc.Create(r.Context(), auth.Username(r.Context()), split.CreateParams{
		Amount:       req.Amount,
		Description:  req.Description,
		Participants: req.Participants,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(exp))
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Error(w, r, apperr.Invalid("invalid id"))
		return
	}

	exp, err := h.svc.Settle(r.Context(), id, auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(exp))
}
