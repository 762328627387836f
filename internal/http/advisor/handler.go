package advisor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
)

type Handler struct {
	svc *advisor.Service
}

func NewHandler(svc *advisor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.suggest)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Suggest(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, s)
}
