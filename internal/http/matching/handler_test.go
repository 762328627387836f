package matching_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finwise/internal/auth"
	matchinghttp "github.com/MrJamesThe3rd/finwise/internal/http/matching"
	"github.com/MrJamesThe3rd/finwise/internal/matching"
)

func newRouter(t *testing.T, setupMock func(m *matching.MockRepository)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := matching.NewMockRepository(ctrl)

	if setupMock != nil {
		setupMock(repo)
	}

	h := matchinghttp.NewHandler(matching.NewService(repo))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUsername(r.Context(), "alice")))
		})
	})
	r.Route("/matching", h.Routes)

	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(m *matching.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "Learn",
			method: http.MethodPost,
			path:   "/matching",
			body:   `{"pattern":"uber","category":"Transportation"}`,
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateMapping(gomock.Any(), "alice", "uber", "Transportation").Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "LearnMissingCategory",
			method:     http.MethodPost,
			path:       "/matching",
			body:       `{"pattern":"uber"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "SuggestMissingDescription",
			method:     http.MethodGet,
			path:       "/matching/suggest",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "List",
			method: http.MethodGet,
			path:   "/matching",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().ListMappings(gomock.Any(), "alice").Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Forget",
			method: http.MethodDelete,
			path:   "/matching/3",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().DeleteMapping(gomock.Any(), "alice", int64(3)).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "ForgetMissing",
			method: http.MethodDelete,
			path:   "/matching/4",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().DeleteMapping(gomock.Any(), "alice", int64(4)).Return(matching.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "ForgetBadID",
			method:     http.MethodDelete,
			path:       "/matching/abc",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newRouter(t, tt.setupMock), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Suggest(t *testing.T) {
	h := newRouter(t, func(m *matching.MockRepository) {
		m.EXPECT().FindMatch(gomock.Any(), "alice", "UBER TRIP 42").Return("Transportation", nil)
	})

	rec := do(h, http.MethodGet, "/matching/suggest?description=UBER+TRIP+42", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Category string `json:"category"`
		Matched  bool   `json:"matched"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Transportation", body.Category)
	assert.True(t, body.Matched)
}
