package news

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
	"github.com/MrJamesThe3rd/finwise/internal/news"
)

type Handler struct {
	client *news.Client
}

func NewHandler(client *news.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.everything)
	r.Get("/headlines", h.headlines)
}

func intParam(q url.Values, name string) (int, error) {
	s := q.Get(name)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, apperr.Invalid("%s must be a non-negative integer", name)
	}

	return n, nil
}

func pageParams(q url.Values) (size, page int, err error) {
	if size, err = intParam(q, "page_size"); err != nil {
		return 0, 0, err
	}

	if page, err = intParam(q, "page"); err != nil {
		return 0, 0, err
	}

	return size, page, nil
}

func (h *Handler) everything(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	size, page, err := pageParams(q)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	res, err := h.client.Everything(r.Context(), news.Query{
		Query:    q.Get("q"),
		Language: q.Get("language"),
		SortBy:   q.Get("sort_by"),
		PageSize: size,
		Page:     page,
		From:     q.Get("from_date"),
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, res)
}

func (h *Handler) headlines(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	size, page, err := pageParams(q)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	res, err := h.client.Headlines(r.Context(), news.HeadlineQuery{
		Country:  q.Get("country"),
		Category: q.Get("category"),
		PageSize: size,
		Page:     page,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, res)
}
