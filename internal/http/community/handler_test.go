package community_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/community"
	communityhttp "github.com/MrJamesThe3rd/finwise/internal/http/community"
)

type mocks struct {
	repo      *community.MockRepository
	keywords  *community.MockKeywordExtractor
	interests *community.MockInterestRecorder
}

func newRouter(t *testing.T, setupMock func(m mocks)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		repo:      community.NewMockRepository(ctrl),
		keywords:  community.NewMockKeywordExtractor(ctrl),
		interests: community.NewMockInterestRecorder(ctrl),
	}

	if setupMock != nil {
		setupMock(m)
	}

	svc := community.NewService(m.repo, m.keywords, m.interests, clock.Fixed(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)))
	h := communityhttp.NewHandler(svc)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUsername(r.Context(), "alice")))
		})
	})
	r.Route("/posts", h.Routes)

	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	h := newRouter(t, func(m mocks) {
		m.keywords.EXPECT().Keywords(gomock.Any(), "Index funds beat stock picking").
			Return(nil, errors.New("quota exceeded"))
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *community.Post) error {
			p.ID = 11
			return nil
		})
	})

	rec := do(h, http.MethodPost, "/posts", `{"content":"  Index funds beat stock picking "}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var post community.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	assert.Equal(t, int64(11), post.ID)
	assert.Equal(t, "alice", post.Username)
	assert.Equal(t, []string{}, post.Keywords)
}

func TestHandler(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(m mocks)
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "CreateEmpty",
			method:     http.MethodPost,
			path:       "/posts",
			body:       `{"content":""}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "ListLimited",
			method: http.MethodGet,
			path:   "/posts?limit=2",
			setupMock: func(m mocks) {
				m.repo.EXPECT().List(gomock.Any(), 2).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "ListBadLimit",
			method:     http.MethodGet,
			path:       "/posts?limit=-1",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "GetMissing",
			method: http.MethodGet,
			path:   "/posts/9",
			setupMock: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), int64(9)).Return(nil, community.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "Interact",
			method: http.MethodPost,
			path:   "/posts/3/interactions",
			body:   `{"weight":1.5}`,
			setupMock: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), int64(3)).
					Return(&community.Post{ID: 3, Keywords: []string{"investing"}}, nil)
				m.interests.EXPECT().AddInterest(gomock.Any(), "alice", []string{"investing"}, 1.5).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "InteractBadID",
			method:     http.MethodPost,
			path:       "/posts/abc/interactions",
			body:       `{"weight":1}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouter(t, tt.setupMock)

			rec := do(h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
