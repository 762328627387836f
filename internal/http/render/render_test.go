package render_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/http/render"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.Invalid("bad"), http.StatusBadRequest},
		{fmt.Errorf("getting post: %w", fmt.Errorf("post %w", apperr.ErrNotFound)), http.StatusNotFound},
		{apperr.ErrUnauthorized, http.StatusUnauthorized},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.ErrConflict, http.StatusConflict},
		{errors.Join(apperr.ErrUnavailable, errors.New("gemini down")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, render.Status(tt.err))
		})
	}
}

func TestError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	render.Error(rec, httptest.NewRequest(http.MethodGet, "/x", nil), errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	render.Error(rec, httptest.NewRequest(http.MethodGet, "/x", nil), apperr.Invalid("amount must be positive"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"validation failed: amount must be positive"}`, rec.Body.String())
}

type createRequest struct {
	Type   string `json:"type" validate:"required,oneof=debit income"`
	Amount int64  `json:"amount" validate:"gt=0"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "Valid", body: `{"type":"debit","amount":100}`},
		{name: "Malformed", body: `{"type":`, wantErr: "invalid request body"},
		{name: "UnknownField", body: `{"type":"debit","amount":1,"extra":true}`, wantErr: "invalid request body"},
		{name: "Missing", body: `{"amount":1}`, wantErr: "type is required"},
		{name: "OneOf", body: `{"type":"gift","amount":1}`, wantErr: "type must be one of [debit income]"},
		{name: "Range", body: `{"type":"income","amount":0}`, wantErr: "amount failed gt=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var req createRequest
			err := render.Decode(httptest.NewRecorder(), r, &req)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, createRequest{Type: "debit", Amount: 100}, req)

				return
			}

			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDecode_Map(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"Food & Dining": 12.5}`))

	var limits map[string]float64
	require.NoError(t, render.Decode(httptest.NewRecorder(), r, &limits))
	assert.Equal(t, map[string]float64{"Food & Dining": 12.5}, limits)
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	render.JSON(rec, http.StatusCreated, map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 7, got["id"])
}
