package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

func TestService_List(t *testing.T) {
	type args struct {
		username string
		filter   transaction.ListFilter
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   bool
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "Success",
			args: args{username: "alice", filter: transaction.ListFilter{StartDate: &start}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					List(gomock.Any(), "alice", transaction.ListFilter{StartDate: &start}).
					Return([]*transaction.Record{
						{ID: 1, Amount: 100, Details: transaction.Income{Source: "Salary"}},
						{ID: 2, Amount: 50, Details: transaction.Debit{Category: "Food"}},
					}, nil)
			},
			wantLen: 2,
		},
		{
			name: "Error",
			args: args{username: "alice"},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					List(gomock.Any(), "alice", transaction.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), tt.args.username, tt.args.filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "alice", int64(42)).Return(nil, transaction.ErrNotFound)

	_, err := transaction.NewService(repo).Get(context.Background(), "alice", 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
