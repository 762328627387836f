package community_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/community"
)

type mocks struct {
	repo      *community.MockRepository
	keywords  *community.MockKeywordExtractor
	interests *community.MockInterestRecorder
}

var now = time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*community.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		repo:      community.NewMockRepository(ctrl),
		keywords:  community.NewMockKeywordExtractor(ctrl),
		interests: community.NewMockInterestRecorder(ctrl),
	}

	return community.NewService(m.repo, m.keywords, m.interests, clock.Fixed(now)), m
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name         string
		content      string
		setupMock    func(m mocks)
		wantKeywords []string
		wantErr      error
	}

	tests := []testCase{
		{
			name:    "Tagged",
			content: "  Paid off my card early this month  ",
			setupMock: func(m mocks) {
				m.keywords.EXPECT().Keywords(gomock.Any(), "Paid off my card early this month").
					Return([]string{"Credit Cards", "Debt Management", "Budgeting"}, nil)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantKeywords: []string{"Credit Cards", "Debt Management", "Budgeting"},
		},
		{
			name:    "KeywordsUnavailable",
			content: "Anyone tried index funds?",
			setupMock: func(m mocks) {
				m.keywords.EXPECT().Keywords(gomock.Any(), gomock.Any()).Return(nil, apperr.ErrUnavailable)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantKeywords: []string{},
		},
		{
			name:    "Empty",
			content: "   ",
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "TooLong",
			content: strings.Repeat("a", 2001),
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "StoreFails",
			content: "hello",
			setupMock: func(m mocks) {
				m.keywords.EXPECT().Keywords(gomock.Any(), gomock.Any()).Return([]string{}, nil)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: errors.New("creating post: db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			post, err := svc.Create(context.Background(), "alice", tt.content)

			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(err, tt.wantErr) {
					return
				}

				assert.EqualError(t, err, tt.wantErr.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "alice", post.Username)
			assert.Equal(t, strings.TrimSpace(tt.content), post.Content)
			assert.Equal(t, tt.wantKeywords, post.Keywords)
			assert.Equal(t, now, post.CreatedAt)
		})
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc, m := newService(t)
	m.repo.EXPECT().Get(gomock.Any(), int64(42)).Return(nil, community.ErrNotFound)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_Interact(t *testing.T) {
	type testCase struct {
		name       string
		setupMock  func(m mocks)
		wantTopics []string
		wantErr    error
	}

	post := &community.Post{ID: 7, Username: "bob", Keywords: []string{"Investing", "Stocks"}}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), int64(7)).Return(post, nil)
				m.interests.EXPECT().AddInterest(gomock.Any(), "alice", []string{"Investing", "Stocks"}, 1.5).Return(nil)
			},
			wantTopics: []string{"Investing", "Stocks"},
		},
		{
			name: "PostMissing",
			setupMock: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), int64(7)).Return(nil, community.ErrNotFound)
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "RecorderFails",
			setupMock: func(m mocks) {
				m.repo.EXPECT().Get(gomock.Any(), int64(7)).Return(post, nil)
				m.interests.EXPECT().AddInterest(gomock.Any(), "alice", gomock.Any(), 1.5).Return(apperr.ErrNotFound)
			},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			topics, err := svc.Interact(context.Background(), "alice", community.Interaction{PostID: 7, Weight: 1.5})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTopics, topics)
		})
	}
}
