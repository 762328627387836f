package translate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/http/render"
	"github.com/MrJamesThe3rd/finwise/internal/translate"
)

type Handler struct {
	translator *translate.Translator
}

func NewHandler(t *translate.Translator) *Handler {
	return &Handler{translator: t}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/languages", h.languages)
	r.Post("/", h.translate)
	r.Post("/batch", h.batch)
}

type languagesResponse struct {
	Languages []translate.Language `json:"languages"`
}

func (h *Handler) languages(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, languagesResponse{Languages: translate.Languages()})
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Source     string `json:"source"`
	Target     string `json:"target"`
}

func (h *Handler) translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	translated, res, err := h.translator.Translate(r.Context(), req.Text, req.Source, req.Target)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, translateResponse{
		Original:   req.Text,
		Translated: translated,
		Source:     res.Source,
		Target:     res.Target,
	})
}

type batchRequest struct {
	Texts  []string `json:"texts" validate:"required,max=100"`
	Source string   `json:"source"`
	Target string   `json:"target"`
}

func (h *Handler) batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	if len(req.Texts) == 0 {
		render.JSON(w, http.StatusOK, translate.Result{Translations: []string{}})
		return
	}

	res, err := h.translator.Batch(r.Context(), req.Texts, req.Source, req.Target)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, res)
}
