package rewards

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
)

type Handler struct {
	svc *gamification.Service
}

func NewHandler(svc *gamification.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/rewards", h.poll)
	r.Post("/rewards/check", h.check)
	r.Get("/rank", h.rank)

	r.Route("/limits", func(r chi.Router) {
		r.Get("/", h.limits)
		r.Put("/", h.replaceLimits)
		r.Post("/", h.addLimit)
		r.Put("/{category}", h.updateLimit)
		r.Delete("/{category}", h.deleteLimit)
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

func (h *Handler) poll(w http.ResponseWriter, r *http.Request) {
	rw, err := h.svc.PollRewards(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	rw.NewAchievements = nonNil(rw.NewAchievements)
	rw.StreakBonuses = nonNil(rw.StreakBonuses)
	rw.TransactionBonuses = nonNil(rw.TransactionBonuses)
	rw.Streaks.Unlocked = nonNil(rw.Streaks.Unlocked)

	render.JSON(w, http.StatusOK, rw)
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	check, err := h.svc.CheckStreaks(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	check.Unlocked = nonNil(check.Unlocked)

	render.JSON(w, http.StatusOK, check)
}

func (h *Handler) rank(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Standing(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	st.Unlocked = nonNil(st.Unlocked)

	render.JSON(w, http.StatusOK, st)
}

type limitsResponse struct {
	Limits map[string]float64 `json:"limits"`
}

func (h *Handler) limits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.svc.Limits(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if limits == nil {
		limits = map[string]float64{}
	}

	render.JSON(w, http.StatusOK, limitsResponse{Limits: limits})
}

type replaceLimitsRequest struct {
	Limits map[string]float64 `json:"limits" validate:"required"`
}

func (h *Handler) replaceLimits(w http.ResponseWriter, r *http.Request) {
	var req replaceLimitsRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.ReplaceLimits(r.Context(), auth.Username(r.Context()), req.Limits); err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, limitsResponse{Limits: req.Limits})
}

type limitRequest struct {
	Category string  `json:"category" validate:"required"`
	Percent  float64 `json:"percent"`
}

func (h *Handler) addLimit(w http.ResponseWriter, r *http.Request) {
	var req limitRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.AddLimit(r.Context(), auth.Username(r.Context()), req.Category, req.Percent); err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, req)
}

type percentRequest struct {
	Percent float64 `json:"percent"`
}

func (h *Handler) updateLimit(w http.ResponseWriter, r *http.Request) {
	var req percentRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	category, err := categoryParam(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.UpdateLimit(r.Context(), auth.Username(r.Context()), category, req.Percent); err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, limitRequest{Category: category, Percent: req.Percent})
}

func (h *Handler) deleteLimit(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteLimit(r.Context(), auth.Username(r.Context()), category); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}

// categoryParam decodes the category path segment. chi routes on the raw path
// when the client escaped it, so "Bills%20%26%20Utilities" arrives encoded.
func categoryParam(r *http.Request) (string, error) {
	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		return "", apperr.Invalid("invalid category in path")
	}

	return category, nil
}
