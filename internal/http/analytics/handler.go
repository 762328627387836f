package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/analytics"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	frame := analytics.ParseTimeFrame(r.URL.Query().Get("time_frame"))

	summary, err := h.svc.Summary(r.Context(), auth.Username(r.Context()), frame)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, summary)
}
