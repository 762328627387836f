package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/finwise/internal/account"
	"github.com/MrJamesThe3rd/finwise/internal/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/gamification"
)

func validParams() account.CreateParams {
	return account.CreateParams{
		Username: "alice",
		Name:     "Alice",
		Email:    "alice@example.com",
		Age:      30,
		Password: "hunter22",
	}
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo).WithHashCost(bcrypt.MinCost)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, acc *account.Account, st *gamification.State) error {
			assert.Equal(t, "alice", st.Username)
			assert.Zero(t, st.Points)
			assert.Zero(t, st.TransactionCount)
			assert.Empty(t, st.Achievements)
			assert.Equal(t, gamification.DefaultLimits(), st.Limits)
			assert.Len(t, acc.Interests, len(advisor.Topics))
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("hunter22")))

			return nil
		})

	acc, err := svc.Create(context.Background(), validParams())
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Username)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *account.CreateParams)
	}{
		{"NoUsername", func(p *account.CreateParams) { p.Username = " " }},
		{"NoName", func(p *account.CreateParams) { p.Name = "" }},
		{"BadEmail", func(p *account.CreateParams) { p.Email = "alice@example" }},
		{"ShortPassword", func(p *account.CreateParams) { p.Password = "12345" }},
		{"NegativeAge", func(p *account.CreateParams) { p.Age = -1 }},
		{"TooOld", func(p *account.CreateParams) { p.Age = 131 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			params := validParams()
			tt.mutate(&params)

			_, err := account.NewService(account.NewMockRepository(ctrl)).Create(context.Background(), params)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestService_Create_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(account.ErrExists)

	_, err := account.NewService(repo).WithHashCost(bcrypt.MinCost).Create(context.Background(), validParams())
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &account.Account{Username: "alice", Email: "alice@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name       string
		identifier string
		password   string
		setupMock  func(m *account.MockRepository)
		wantErr    error
	}{
		{
			name:       "ByEmail",
			identifier: "alice@example.com",
			password:   "hunter22",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().FindByIdentifier(gomock.Any(), "alice@example.com").Return(stored, nil)
			},
		},
		{
			name:       "WrongPassword",
			identifier: "alice",
			password:   "nope",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().FindByIdentifier(gomock.Any(), "alice").Return(stored, nil)
			},
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:       "UnknownUser",
			identifier: "bob",
			password:   "hunter22",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().FindByIdentifier(gomock.Any(), "bob").Return(nil, account.ErrNotFound)
			},
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:    "MissingFields",
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			acc, err := account.NewService(repo).Authenticate(context.Background(), tt.identifier, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "alice", acc.Username)
		})
	}
}
