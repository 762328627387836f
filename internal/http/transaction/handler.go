package transaction

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
	"github.com/MrJamesThe3rd/finwise/internal/importer"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	ledger   *transaction.Service
	engine   *gamification.Service
	importer *importer.Service
}

func NewHandler(ledger *transaction.Service, engine *gamification.Service, imp *importer.Service) *Handler {
	return &Handler{ledger: ledger, engine: engine, importer: imp}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/import", h.importCSV)
	r.Get("/{id}", h.get)
}

type createTransactionRequest struct {
	Type transaction.Type `json:"type" validate:"required,oneof=debit income loan_taken loan_repayment"`
	// Amount is in cents.
	Amount     int64  `json:"amount" validate:"gt=0"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Category   string `json:"category"`
	Source     string `json:"source"`
	Lender     string `json:"lender"`
	PaidOnTime bool   `json:"paid_on_time"`
}

func (req createTransactionRequest) label() string {
	switch req.Type {
	case transaction.TypeDebit:
		return req.Category
	case transaction.TypeIncome:
		return req.Source
	}

	return req.Lender
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	details, err := transaction.NewDetails(req.Type, req.label(), &req.PaidOnTime, nil)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	rec := &transaction.Record{Amount: req.Amount, Details: details}

	if req.Date != "" {
		rec.Date, _ = time.Parse(time.DateOnly, req.Date)
	}

	res, err := h.engine.Record(r.Context(), auth.Username(r.Context()), rec)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toPostResponse(res))
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, apperr.Invalid("%s must be YYYY-MM-DD", name)
	}

	return &t, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		t := transaction.Type(s)
		filter.Type = &t
	}

	var err error

	if filter.StartDate, err = parseDateParam(r, "start_date"); err != nil {
		render.Error(w, r, err)
		return
	}

	if filter.EndDate, err = parseDateParam(r, "end_date"); err != nil {
		render.Error(w, r, err)
		return
	}

	recs, err := h.ledger.List(r.Context(), auth.Username(r.Context()), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(recs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Error(w, r, apperr.Invalid("invalid id"))
		return
	}

	rec, err := h.ledger.Get(r.Context(), auth.Username(r.Context()), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(rec))
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.Error(w, r, apperr.Invalid("failed to parse form: %s", err.Error()))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		render.Error(w, r, apperr.Invalid("file field is required"))
		return
	}
	defer file.Close()

	res, err := h.importer.Import(r.Context(), auth.Username(r.Context()), file)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toImportResponse(res))
}
