package advisor_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finwise/internal/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

func geminiServer(t *testing.T, answer string, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "responseSchema")

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		resp := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": answer}}}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newGemini(url string) *advisor.Gemini {
	return advisor.NewGemini(advisor.GeminiConfig{
		BaseURL:      url,
		APIKey:       "secret",
		Model:        "gemini-2.5-flash",
		KeywordModel: "gemini-2.5-flash-lite",
	})
}

func TestGemini_Suggest(t *testing.T) {
	srv := geminiServer(t, `{"praise":"Nice saving","suggestions":"Cook more"}`, http.StatusOK)

	got, err := newGemini(srv.URL).Suggest(context.Background(), advisor.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, &advisor.Suggestion{Praise: "Nice saving", Suggestions: "Cook more"}, got)
}

func TestGemini_Keywords_FiltersTaxonomy(t *testing.T) {
	srv := geminiServer(t, `["Behavioral finance","Sports betting","Behavioral finance","Wealth management"]`, http.StatusOK)

	got, err := newGemini(srv.URL).Keywords(context.Background(), "I keep impulse buying")
	require.NoError(t, err)
	assert.Equal(t, []string{"Behavioral finance", "Wealth management"}, got)
}

func TestGemini_Failures(t *testing.T) {
	srv := geminiServer(t, "", http.StatusInternalServerError)

	_, err := newGemini(srv.URL).Suggest(context.Background(), advisor.Snapshot{})
	assert.ErrorIs(t, err, apperr.ErrUnavailable)

	_, err = advisor.NewGemini(advisor.GeminiConfig{BaseURL: srv.URL}).Keywords(context.Background(), "x")
	assert.ErrorIs(t, err, advisor.ErrNotConfigured)
}

func TestFilterTopics_Cap(t *testing.T) {
	got := advisor.FilterTopics(advisor.Topics)
	assert.Len(t, got, 7)
	assert.Equal(t, advisor.Topics[:7], got)
}

func TestService_Suggest_SplitsRecent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	old := &transaction.Record{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Amount: 100, Details: transaction.Income{Source: "Salary"}}
	recent := &transaction.Record{Date: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), Amount: 100, Details: transaction.Debit{Category: "Food"}}

	ledger := advisor.NewMockLedgerReader(ctrl)
	gen := advisor.NewMockGenerator(ctrl)

	ledger.EXPECT().List(gomock.Any(), "alice", transaction.ListFilter{}).Return([]*transaction.Record{old, recent}, nil)
	gen.EXPECT().
		Suggest(gomock.Any(), advisor.Snapshot{Recent: []*transaction.Record{recent}, All: []*transaction.Record{old, recent}}).
		Return(&advisor.Suggestion{Praise: "ok"}, nil)

	got, err := advisor.NewService(ledger, gen, clock.Fixed(now)).Suggest(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Praise)
}
