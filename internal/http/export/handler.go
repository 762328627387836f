package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/export"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.summary)
	r.Post("/download", h.download)
}

type exportRequest struct {
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}

	t, _ := time.Parse(time.DateOnly, s)

	return &t
}

func (req exportRequest) filter() transaction.ListFilter {
	return transaction.ListFilter{
		StartDate: parseDate(req.StartDate),
		EndDate:   parseDate(req.EndDate),
	}
}

type summaryResponse struct {
	FileName     string `json:"file_name"`
	Transactions int    `json:"transactions"`
	Summary      string `json:"summary"`
}

func (h *Handler) bundle(w http.ResponseWriter, r *http.Request) (*export.Bundle, bool) {
	var req exportRequest
	if r.ContentLength != 0 {
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, r, err)
			return nil, false
		}
	}

	b, err := h.svc.Export(r.Context(), auth.Username(r.Context()), req.filter())
	if err != nil {
		render.Error(w, r, err)
		return nil, false
	}

	return b, true
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bundle(w, r)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, summaryResponse{
		FileName:     b.FileName(),
		Transactions: len(b.Records),
		Summary:      b.Summary(),
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bundle(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", b.FileName()))

	if err := b.WriteArchive(w); err != nil {
		slog.Error("failed to write export archive", "username", b.Username, "error", err)
	}
}
