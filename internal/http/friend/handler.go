package friend

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/friend"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
)

type Handler struct {
	svc *friend.Service
}

func NewHandler(svc *friend.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/requests", h.requests)
	r.Post("/requests", h.send)
	r.Post("/requests/{id}/respond", h.respond)
	r.Delete("/{username}", h.remove)
}

type requestResponse struct {
	ID          uuid.UUID     `json:"id"`
	Sender      string        `json:"sender"`
	Recipient   string        `json:"recipient"`
	Status      friend.Status `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`
}

func toRequestResponse(req *friend.Request) requestResponse {
	return requestResponse{
		ID:          req.ID,
		Sender:      req.Sender,
		Recipient:   req.Recipient,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
		RespondedAt: req.RespondedAt,
	}
}

func toRequestList(reqs []*friend.Request) []requestResponse {
	out := make([]requestResponse, len(reqs))
	for i, req := range reqs {
		out[i] = toRequestResponse(req)
	}

	return out
}

type friendsResponse struct {
	Friends []string `json:"friends"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	friends, err := h.svc.Friends(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if friends == nil {
		friends = []string{}
	}

	render.JSON(w, http.StatusOK, friendsResponse{Friends: friends})
}

type requestsResponse struct {
	Received []requestResponse `json:"received"`
	Sent     []requestResponse `json:"sent"`
}

func (h *Handler) requests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.svc.Requests(r.Context(), auth.Username(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, requestsResponse{
		Received: toRequestList(reqs.Received),
		Sent:     toRequestList(reqs.Sent),
	})
}

type sendRequest struct {
	Recipient string `json:"recipient" validate:"required"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var body sendRequest
	if err := render.Decode(w, r, &body); err != nil {
		render.Error(w, r, err)
		return
	}

	req, err := h.svc.Send(r.Context(), auth.Username(r.Context()), body.Recipient)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toRequestResponse(req))
}

type respondRequest struct {
	Action friend.Action `json:"action" validate:"required,oneof=approve decline"`
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, apperr.Invalid("invalid request id"))
		return
	}

	var body respondRequest
	if err := render.Decode(w, r, &body); err != nil {
		render.Error(w, r, err)
		return
	}

	req, err := h.svc.Respond(r.Context(), auth.Username(r.Context()), id, body.Action)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), auth.Username(r.Context()), chi.URLParam(r, "username")); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
