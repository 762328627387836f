package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
	"github.com/MrJamesThe3rd/finwise/internal/importer"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

const statement = `Date,Description,Amount
2024-04-02,CONTINENTE LISBOA,-42.10
2024-04-03,UNKNOWN MERCHANT,-5.00
2024-04-04,ACME PAYROLL,2500.00
`

func TestService_Import(t *testing.T) {
	type testCase struct {
		name       string
		content    string
		setupMock  func(m *importer.MockCategoryMatcher, l *importer.MockLedger)
		wantLabels []string
		wantErr    error
	}

	echo := func(_ context.Context, _ string, recs []*transaction.Record) (*gamification.ImportResult, error) {
		return &gamification.ImportResult{Imported: recs}, nil
	}

	tests := []testCase{
		{
			name:    "MatchesCategories",
			content: statement,
			setupMock: func(m *importer.MockCategoryMatcher, l *importer.MockLedger) {
				m.EXPECT().Suggest(gomock.Any(), "alice", "CONTINENTE LISBOA").Return("Food & Dining", nil)
				m.EXPECT().Suggest(gomock.Any(), "alice", "UNKNOWN MERCHANT").Return("", nil)
				l.EXPECT().Import(gomock.Any(), "alice", gomock.Len(3)).DoAndReturn(echo)
			},
			wantLabels: []string{"Food & Dining", importer.DefaultCategory, "ACME PAYROLL"},
		},
		{
			name:    "MatcherFailsFallsBack",
			content: statement,
			setupMock: func(m *importer.MockCategoryMatcher, l *importer.MockLedger) {
				m.EXPECT().Suggest(gomock.Any(), "alice", gomock.Any()).Return("", errors.New("db down")).Times(2)
				l.EXPECT().Import(gomock.Any(), "alice", gomock.Any()).DoAndReturn(echo)
			},
			wantLabels: []string{importer.DefaultCategory, importer.DefaultCategory, "ACME PAYROLL"},
		},
		{
			name:    "ExportNeedsNoMatching",
			content: "date,type,amount,label,paid_on_time\n2024-04-01,loan_repayment,50.00,Bank,true\n",
			setupMock: func(_ *importer.MockCategoryMatcher, l *importer.MockLedger) {
				l.EXPECT().Import(gomock.Any(), "alice", gomock.Any()).DoAndReturn(echo)
			},
			wantLabels: []string{"Bank"},
		},
		{
			name:    "UnknownFormat",
			content: "a,b\n1,2\n",
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "LedgerFails",
			content: "date,type,amount,label\n2024-04-01,income,5.00,Gift\n",
			setupMock: func(_ *importer.MockCategoryMatcher, l *importer.MockLedger) {
				l.EXPECT().Import(gomock.Any(), "alice", gomock.Any()).Return(nil, gamification.ErrUserNotFound)
			},
			wantErr: gamification.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			matcher := importer.NewMockCategoryMatcher(ctrl)
			ledger := importer.NewMockLedger(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(matcher, ledger)
			}

			svc := importer.NewService(matcher, ledger)
			res, err := svc.Import(context.Background(), "alice", strings.NewReader(tt.content))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			labels := make([]string, 0, len(res.Imported))
			for _, rec := range res.Imported {
				assert.Equal(t, "alice", rec.Username)
				labels = append(labels, rec.Label())
			}

			assert.Equal(t, tt.wantLabels, labels)
		})
	}
}

func TestService_Import_PaidOnTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := importer.NewMockLedger(ctrl)

	ledger.EXPECT().Import(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, recs []*transaction.Record) (*gamification.ImportResult, error) {
			require.Len(t, recs, 1)
			assert.Equal(t, transaction.LoanRepayment{Lender: "Bank", PaidOnTime: true}, recs[0].Details)

			return &gamification.ImportResult{Duplicates: recs}, nil
		})

	res, err := importer.NewService(importer.NewMockCategoryMatcher(ctrl), ledger).
		Import(context.Background(), "alice", strings.NewReader("date,type,amount,label,paid_on_time\n2024-04-01,loan_repayment,50.00,Bank,true\n"))
	require.NoError(t, err)

	assert.Equal(t, "finwise", res.Format)
	assert.Empty(t, res.Imported)
	assert.Len(t, res.Duplicates, 1)
}
