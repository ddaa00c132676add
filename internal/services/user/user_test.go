package user

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/telegram-suite/identity-hub/internal/contracts"
	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) RegisterUser(ctx context.Context, user models.User, serviceID int64) (*models.User, bool, error) {
	args := m.Called(ctx, user, serviceID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockRepository) UpdateUserByChatID(ctx context.Context, chatID int64, patch models.UserPatch) (*models.User, error) {
	args := m.Called(ctx, chatID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func strPtr(s string) *string { return &s }

func TestService_Register(t *testing.T) {
	stored := &models.User{ID: 7, ChatID: 100, Language: "ru", Active: true}

	tests := []struct {
		name          string
		form          contracts.UserRegistered
		setupMocks    func(*MockRepository)
		expectedError bool
	}{
		{
			name: "new user created with default language",
			form: contracts.UserRegistered{ChatID: 100, Username: "alice"},
			setupMocks: func(r *MockRepository) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.ChatID == 100 && u.Language == "ru" && u.Username != nil && *u.Username == "alice"
				}), int64(1)).Return(stored, true, nil).Once()
			},
		},
		{
			name: "existing user reused on redelivery",
			form: contracts.UserRegistered{ChatID: 100, Username: "alice"},
			setupMocks: func(r *MockRepository) {
				r.On("RegisterUser", mock.Anything, mock.Anything, int64(1)).
					Return(stored, false, nil).Once()
			},
		},
		{
			name: "explicit language kept",
			form: contracts.UserRegistered{ChatID: 100, Username: "alice", Language: strPtr("en")},
			setupMocks: func(r *MockRepository) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Language == "en"
				}), int64(1)).Return(stored, true, nil).Once()
			},
		},
		{
			name:          "invalid birthday is permanent",
			form:          contracts.UserRegistered{ChatID: 100, Username: "alice", Birthday: strPtr("not-a-date")},
			setupMocks:    func(r *MockRepository) {},
			expectedError: true,
		},
		{
			name: "repository failure propagates",
			form: contracts.UserRegistered{ChatID: 100, Username: "alice"},
			setupMocks: func(r *MockRepository) {
				r.On("RegisterUser", mock.Anything, mock.Anything, int64(1)).
					Return(nil, false, domain.ErrUnavailable).Once()
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := New(repo, newNoopLogger())

			tt.setupMocks(repo)

			result, err := service.Register(context.Background(), 1, tt.form)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored, result)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	stored := &models.User{ID: 7, ChatID: 100, Language: "ru", Active: true}

	t.Run("only present fields land in the patch", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		form := contracts.UserUpdated{
			ChatID:   100,
			Username: models.SetTo("bob"),
			Birthday: models.SetTo("1990-05-17"),
		}
		repo.On("UpdateUserByChatID", mock.Anything, int64(100), mock.MatchedBy(func(p models.UserPatch) bool {
			return p.Username.Set && *p.Username.Value == "bob" &&
				p.Birthday.Set && p.Birthday.Value.Equal(time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)) &&
				!p.Phone.Set && !p.Email.Set && !p.Language.Set && !p.Active.Set
		})).Return(stored, nil).Once()

		result, err := service.Update(context.Background(), form)
		require.NoError(t, err)
		assert.Equal(t, stored, result)
		repo.AssertExpectations(t)
	})

	t.Run("explicit null clears nullable fields", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		form := contracts.UserUpdated{
			ChatID:   100,
			Email:    models.SetNull[string](),
			Birthday: models.SetNull[string](),
		}
		repo.On("UpdateUserByChatID", mock.Anything, int64(100), mock.MatchedBy(func(p models.UserPatch) bool {
			return p.Email.Set && p.Email.Value == nil &&
				p.Birthday.Set && p.Birthday.Value == nil &&
				!p.Username.Set && !p.Phone.Set && !p.Language.Set && !p.Active.Set
		})).Return(stored, nil).Once()

		result, err := service.Update(context.Background(), form)
		require.NoError(t, err)
		assert.Equal(t, stored, result)
		repo.AssertExpectations(t)
	})

	t.Run("unknown user propagates not found", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		repo.On("UpdateUserByChatID", mock.Anything, int64(999), mock.Anything).
			Return(nil, domain.ErrNotFound).Once()

		result, err := service.Update(context.Background(), contracts.UserUpdated{ChatID: 999, Username: models.SetTo("bob")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, result)
		repo.AssertExpectations(t)
	})

	t.Run("invalid birthday fails before storage", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		result, err := service.Update(context.Background(), contracts.UserUpdated{ChatID: 100, Birthday: models.SetTo("05/17/1990")})
		assert.ErrorIs(t, err, domain.ErrInvalidEvent)
		assert.Nil(t, result)
		repo.AssertExpectations(t)
	})
}
