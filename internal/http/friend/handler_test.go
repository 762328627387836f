package friend_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finwise/internal/auth"
	"github.com/MrJamesThe3rd/finwise/internal/friend"
	friendhttp "github.com/MrJamesThe3rd/finwise/internal/http/friend"
)

func newRouter(t *testing.T, setupMock func(m *friend.MockRepository)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := friend.NewMockRepository(ctrl)

	if setupMock != nil {
		setupMock(repo)
	}

	h := friendhttp.NewHandler(friend.NewService(repo))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUsername(r.Context(), "alice")))
		})
	})
	r.Route("/friends", h.Routes)

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
		setupMock  func(m *friend.MockRepository)
		wantStatus int
	}

	reqID := uuid.MustParse("8f14e45f-ceea-467f-a0d4-0c5e2b1f2a10")

	tests := []testCase{
		{
			name:   "List",
			method: http.MethodGet,
			path:   "/friends",
			setupMock: func(m *friend.MockRepository) {
				m.EXPECT().Friends(gomock.Any(), "alice").Return([]string{"bob"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Send",
			method: http.MethodPost,
			path:   "/friends/requests",
			body:   `{"recipient":"bob"}`,
			setupMock: func(m *friend.MockRepository) {
				m.EXPECT().UserExists(gomock.Any(), "bob").Return(true, nil)
				m.EXPECT().AreFriends(gomock.Any(), "alice", "bob").Return(false, nil)
				m.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "SendUnknownUser",
			method: http.MethodPost,
			path:   "/friends/requests",
			body:   `{"recipient":"ghost"}`,
			setupMock: func(m *friend.MockRepository) {
				m.EXPECT().UserExists(gomock.Any(), "ghost").Return(false, nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "SendToSelf",
			method:     http.MethodPost,
			path:       "/friends/requests",
			body:       `{"recipient":"alice"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Approve",
			method: http.MethodPost,
			path:   "/friends/requests/" + reqID.String() + "/respond",
			body:   `{"action":"approve"}`,
			setupMock: func(m *friend.MockRepository) {
				req := &friend.Request{ID: reqID, Sender: "bob", Recipient: "alice", Status: friend.StatusPending}
				m.EXPECT().GetRequest(gomock.Any(), reqID).Return(req, nil)
				m.EXPECT().Approve(gomock.Any(), req).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "RespondNotRecipient",
			method: http.MethodPost,
			path:   "/friends/requests/" + reqID.String() + "/respond",
			body:   `{"action":"decline"}`,
			setupMock: func(m *friend.MockRepository) {
				m.EXPECT().GetRequest(gomock.Any(), reqID).
					Return(&friend.Request{ID: reqID, Sender: "alice", Recipient: "bob", Status: friend.StatusPending}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "RespondBadAction",
			method:     http.MethodPost,
			path:       "/friends/requests/" + reqID.String() + "/respond",
			body:       `{"action":"maybe"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "RespondBadID",
			method:     http.MethodPost,
			path:       "/friends/requests/nope/respond",
			body:       `{"action":"approve"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Remove",
			method: http.MethodDelete,
			path:   "/friends/bob",
			setupMock: func(m *friend.MockRepository) {
				m.EXPECT().Remove(gomock.Any(), "alice", "bob").Return(true, nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "RemoveStranger",
			method: http.MethodDelete,
			path:   "/friends/carol",
			setupMock: func(m *friend.MockRepository) {
				m.EXPECT().Remove(gomock.Any(), "alice", "carol").Return(false, nil)
			},
			wantStatus: http.StatusNotFound,
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

func TestHandler_Requests(t *testing.T) {
	h := newRouter(t, func(m *friend.MockRepository) {
		m.EXPECT().ListPending(gomock.Any(), "alice").Return(&friend.Requests{
			Received: []*friend.Request{{ID: uuid.New(), Sender: "bob", Recipient: "alice", Status: friend.StatusPending}},
		}, nil)
	})

	rec := do(h, http.MethodGet, "/friends/requests", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Received []map[string]any `json:"received"`
		Sent     []map[string]any `json:"sent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Len(t, body.Received, 1)
	assert.NotNil(t, body.Sent)
	assert.Empty(t, body.Sent)
}
