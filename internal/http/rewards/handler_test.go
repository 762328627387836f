package rewards_test

import (
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
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	"github.com/MrJamesThe3rd/finwise/internal/http/rewards"
)

var now = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

func newRouter(t *testing.T, setupMock func(repo *gamification.MockRepository, utx *gamification.MockUserTx)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := gamification.NewMockRepository(ctrl)
	utx := gamification.NewMockUserTx(ctrl)

	if setupMock != nil {
		setupMock(repo, utx)
	}

	h := rewards.NewHandler(gamification.NewService(repo, clock.Fixed(now), gamification.DefaultPolicy()))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUsername(r.Context(), "alice")))
		})
	})
	h.Routes(r)

	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

// expectUnitOfWork expects one committed update against st.
func expectUnitOfWork(repo *gamification.MockRepository, utx *gamification.MockUserTx, st *gamification.State) {
	repo.EXPECT().Begin(gomock.Any(), "alice").Return(utx, nil)
	utx.EXPECT().State(gomock.Any()).Return(st, nil)
	utx.EXPECT().SaveState(gomock.Any(), st).Return(nil)
	utx.EXPECT().Commit().Return(nil)
	utx.EXPECT().Rollback().Return(nil)
}

func TestHandler_Limits(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(repo *gamification.MockRepository, utx *gamification.MockUserTx)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "List",
			method: http.MethodGet,
			path:   "/limits",
			setupMock: func(repo *gamification.MockRepository, _ *gamification.MockUserTx) {
				repo.EXPECT().Get(gomock.Any(), "alice").Return(gamification.NewState("alice"), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Add",
			method: http.MethodPost,
			path:   "/limits",
			body:   `{"category":"Pets","percent":5}`,
			setupMock: func(repo *gamification.MockRepository, utx *gamification.MockUserTx) {
				expectUnitOfWork(repo, utx, gamification.NewState("alice"))
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "AddExisting",
			method: http.MethodPost,
			path:   "/limits",
			body:   `{"category":"Travel","percent":5}`,
			setupMock: func(repo *gamification.MockRepository, utx *gamification.MockUserTx) {
				repo.EXPECT().Begin(gomock.Any(), "alice").Return(utx, nil)
				utx.EXPECT().State(gomock.Any()).Return(gamification.NewState("alice"), nil)
				utx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "AddOutOfRange",
			method:     http.MethodPost,
			path:       "/limits",
			body:       `{"category":"Pets","percent":150}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "UpdateMissing",
			method: http.MethodPut,
			path:   "/limits/Pets",
			body:   `{"percent":5}`,
			setupMock: func(repo *gamification.MockRepository, utx *gamification.MockUserTx) {
				repo.EXPECT().Begin(gomock.Any(), "alice").Return(utx, nil)
				utx.EXPECT().State(gomock.Any()).Return(gamification.NewState("alice"), nil)
				utx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "Delete",
			method: http.MethodDelete,
			path:   "/limits/Travel",
			setupMock: func(repo *gamification.MockRepository, utx *gamification.MockUserTx) {
				expectUnitOfWork(repo, utx, gamification.NewState("alice"))
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "Replace",
			method: http.MethodPut,
			path:   "/limits",
			body:   `{"limits":{"Food & Dining":15}}`,
			setupMock: func(repo *gamification.MockRepository, utx *gamification.MockUserTx) {
				expectUnitOfWork(repo, utx, gamification.NewState("alice"))
			},
			wantStatus: http.StatusOK,
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

func TestHandler_EscapedCategory(t *testing.T) {
	t.Run("Delete", func(t *testing.T) {
		st := gamification.NewState("alice")
		require.Contains(t, st.Limits, "Bills & Utilities")

		h := newRouter(t, func(repo *gamification.MockRepository, utx *gamification.MockUserTx) {
			expectUnitOfWork(repo, utx, st)
		})

		rec := do(h, http.MethodDelete, "/limits/Bills%20%26%20Utilities", "")
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
		assert.NotContains(t, st.Limits, "Bills & Utilities")
	})

	t.Run("Update", func(t *testing.T) {
		st := gamification.NewState("alice")

		h := newRouter(t, func(repo *gamification.MockRepository, utx *gamification.MockUserTx) {
			expectUnitOfWork(repo, utx, st)
		})

		rec := do(h, http.MethodPut, "/limits/Bills%20%26%20Utilities", `{"percent":15}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 15.0, st.Limits["Bills & Utilities"])
		assert.Contains(t, rec.Body.String(), `"category":"Bills \u0026 Utilities"`)
	})
}

func TestHandler_Rank(t *testing.T) {
	st := gamification.NewState("alice")
	st.Points = 600

	h := newRouter(t, func(repo *gamification.MockRepository, utx *gamification.MockUserTx) {
		expectUnitOfWork(repo, utx, st)
	})

	rec := do(h, http.MethodGet, "/rank", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Points int64 `json:"points"`
		Rank   struct {
			Name string `json:"name"`
		} `json:"rank"`
		Unlocked []json.RawMessage `json:"newly_unlocked"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, int64(600), body.Points)
	assert.Equal(t, "Silver Saver", body.Rank.Name)
	assert.NotNil(t, body.Unlocked)
}

func TestHandler_Poll(t *testing.T) {
	week := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	month := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	st := gamification.NewState("alice")
	st.LastWeeklyCheck = &week
	st.LastMonthlyCheck = &month
	st.TransactionNotice = gamification.Notice{
		ID:      "n-1",
		Bonuses: []gamification.Bonus{{Kind: gamification.BonusTransaction, Points: 10}},
	}

	h := newRouter(t, func(repo *gamification.MockRepository, utx *gamification.MockUserTx) {
		expectUnitOfWork(repo, utx, st)
		utx.EXPECT().Ledger(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	})

	rec := do(h, http.MethodGet, "/rewards", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		TransactionBonuses []gamification.Bonus `json:"transaction_bonuses"`
		StreakBonuses      []gamification.Bonus `json:"streak_bonuses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.TransactionBonuses, 1)
	assert.Equal(t, int64(10), body.TransactionBonuses[0].Points)
	assert.NotNil(t, body.StreakBonuses)
	assert.Empty(t, body.StreakBonuses)
	assert.Equal(t, "n-1", st.LastShownTransactionBonusID)
}
