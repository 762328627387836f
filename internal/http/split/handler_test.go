package split_test

import (
	"context"
	"encoding/json"
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
	splithttp "github.com/MrJamesThe3rd/finwise/internal/http/split"
	"github.com/MrJamesThe3rd/finwise/internal/split"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

func newRouter(t *testing.T, setupMock func(repo *split.MockRepository, friends *split.MockFriendChecker)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := split.NewMockRepository(ctrl)
	friends := split.NewMockFriendChecker(ctrl)

	if setupMock != nil {
		setupMock(repo, friends)
	}

	h := splithttp.NewHandler(split.NewService(repo, friends, clock.Fixed(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUsername(r.Context(), "alice")))
		})
	})
	r.Route("/splits", h.Routes)

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
	h := newRouter(t, func(repo *split.MockRepository, friends *split.MockFriendChecker) {
		friends.EXPECT().AreFriends(gomock.Any(), "alice", "bob").Return(true, nil)
		friends.EXPECT().AreFriends(gomock.Any(), "alice", "carol").Return(true, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Len(3)).
			DoAndReturn(func(_ context.Context, exp *split.Expense, _ []*transaction.Record) error {
				exp.ID = 5
				return nil
			})
	})

	rec := do(h, http.MethodPost, "/splits", `{"amount":10000,"description":"Dinner","participants":["bob","carol"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		ID              int64            `json:"id"`
		AmountPerPerson int64            `json:"amount_per_person"`
		Balances        map[string]int64 `json:"balances"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, int64(3333), body.AmountPerPerson)
	assert.Equal(t, map[string]int64{"bob": 3333, "carol": 3333}, body.Balances)
}

func TestHandler_CreateErrors(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(repo *split.MockRepository, friends *split.MockFriendChecker)
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "NoParticipants",
			body:       `{"amount":100,"description":"Taxi","participants":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingDescription",
			body:       `{"amount":100,"participants":["bob"]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "NotFriend",
			body: `{"amount":100,"description":"Taxi","participants":["mallory"]}`,
			setupMock: func(_ *split.MockRepository, friends *split.MockFriendChecker) {
				friends.EXPECT().AreFriends(gomock.Any(), "alice", "mallory").Return(false, nil)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouter(t, tt.setupMock)

			rec := do(h, http.MethodPost, "/splits", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Settle(t *testing.T) {
	type testCase struct {
		name       string
		path       string
		setupMock  func(repo *split.MockRepository, friends *split.MockFriendChecker)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Settled",
			path: "/splits/5/settle",
			setupMock: func(repo *split.MockRepository, _ *split.MockFriendChecker) {
				repo.EXPECT().Get(gomock.Any(), int64(5)).Return(&split.Expense{ID: 5, CreatedBy: "alice"}, nil)
				repo.EXPECT().MarkSettled(gomock.Any(), int64(5)).Return(true, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "NotCreator",
			path: "/splits/5/settle",
			setupMock: func(repo *split.MockRepository, _ *split.MockFriendChecker) {
				repo.EXPECT().Get(gomock.Any(), int64(5)).Return(&split.Expense{ID: 5, CreatedBy: "bob"}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "AlreadySettled",
			path: "/splits/5/settle",
			setupMock: func(repo *split.MockRepository, _ *split.MockFriendChecker) {
				repo.EXPECT().Get(gomock.Any(), int64(5)).Return(&split.Expense{ID: 5, CreatedBy: "alice", Settled: true}, nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "InvalidID",
			path:       "/splits/x/settle",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouter(t, tt.setupMock)

			rec := do(h, http.MethodPost, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_List(t *testing.T) {
	h := newRouter(t, func(repo *split.MockRepository, _ *split.MockFriendChecker) {
		repo.EXPECT().ListCreated(gomock.Any(), "alice").Return([]*split.Expense{
			{ID: 1, CreatedBy: "alice", Participants: []string{"bob"}, Balances: map[string]int64{"bob": 500}},
		}, nil)
		repo.EXPECT().ListInvolved(gomock.Any(), "alice").Return([]*split.Expense{
			{ID: 2, CreatedBy: "carol", Participants: []string{"alice"}, Balances: map[string]int64{"alice": 200}},
		}, nil)
	})

	rec := do(h, http.MethodGet, "/splits", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		OwedToYou map[string]int64 `json:"owed_to_you"`
		YouOwe    map[string]int64 `json:"you_owe"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, map[string]int64{"bob": 500}, body.OwedToYou)
	assert.Equal(t, map[string]int64{"carol": 200}, body.YouOwe)
}
