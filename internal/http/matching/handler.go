package matching

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
	"github.com/MrJamesThe3rd/finwise/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Get("/", h.list)
	r.Post("/", h.learn)
	r.Delete("/{id}", h.forget)
}

type suggestResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Matched     bool   `json:"matched"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")
	if desc == "" {
		render.Error(w, r, apperr.Invalid("description query parameter is required"))
		return
	}

	category, err := h.svc.Suggest(r.Context(), auth.Username(r.Context()), desc)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, suggestResponse{
		Description: desc,
		Category:    category,
		Matched:     category != "",
	})
}

type learnRequest struct {
	Pattern  string `json:"pattern" validate:"required"`
	Category string `json:"category" validate:"required"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.Learn(r.Context(), auth.Username(r.Context()), req.Pattern, req.Category); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type mappingResponse struct {
	ID        int64     `json:"id"`
	Pattern   string    `json:"pattern"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.svc.Mappings(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]mappingResponse, 0, len(mappings))
	for _, m := range mappings {
		resp = append(resp, mappingResponse{ID: m.ID, Pattern: m.Pattern, Category: m.Category, CreatedAt: m.CreatedAt})
	}

	render.JSON(w, http.StatusOK, map[string]any{"mappings": resp})
}

func (h *Handler) forget(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Error(w, r, apperr.Invalid("invalid mapping id"))
		return
	}

	if err := h.svc.Forget(r.Context(), auth.Username(r.Context()), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
