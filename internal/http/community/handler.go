package community

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/community"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
)

type Handler struct {
	svc *community.Service
}

func NewHandler(svc *community.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Post("/{id}/interactions", h.interact)
}

func postID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperr.Invalid("invalid post id")
	}

	return id, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			render.Error(w, r, apperr.Invalid("limit must be a non-negative integer"))
			return
		}

		limit = n
	}

	posts, err := h.svc.List(r.Context(), limit)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if posts == nil {
		posts = []*community.Post{}
	}

	render.JSON(w, http.StatusOK, posts)
}

type createRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	post, err := h.svc.Create(r.Context(), auth.Username(r.Context()), req.Content)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, post)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	post, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, post)
}

type interactRequest struct {
	Weight float64 `json:"weight" validate:"required"`
}

type interactResponse struct {
	PostID int64    `json:"post_id"`
	Topics []string `json:"topics"`
}

func (h *Handler) interact(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req interactRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	topics, err := h.svc.Interact(r.Context(), auth.Username(r.Context()), community.Interaction{PostID: id, Weight: req.Weight})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if topics == nil {
		topics = []string{}
	}

	render.JSON(w, http.StatusOK, interactResponse{PostID: id, Topics: topics})
}
