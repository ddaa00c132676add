package apikey

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/lib/secrets"
	"github.com/telegram-suite/identity-hub/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetService(ctx context.Context, id int64) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockRepository) CreateAPIKey(ctx context.Context, key models.APIKey) (*models.APIKey, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.APIKey), args.Error(1)
}

func (m *MockRepository) DeactivateAPIKey(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Issue(t *testing.T) {
	svc := &models.Service{ID: 1, Name: "telegram-bot"}

	t.Run("raw key is returned, only the hash is stored", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		var storedHash string
		repo.On("GetService", mock.Anything, int64(1)).Return(svc, nil).Once()
		repo.On("CreateAPIKey", mock.Anything, mock.MatchedBy(func(k models.APIKey) bool {
			storedHash = k.KeyHash
			return k.ServiceID == 1 && k.KeyHash != ""
		})).Return(&models.APIKey{ID: 10, ServiceID: 1, Active: true}, nil).Once()

		rawKey, key, err := service.Issue(context.Background(), 1, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, rawKey)
		assert.Equal(t, int64(10), key.ID)
		assert.NotEqual(t, rawKey, storedHash)
		assert.NoError(t, secrets.CompareHash(storedHash, rawKey))
		repo.AssertExpectations(t)
	})

	t.Run("unknown service", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		repo.On("GetService", mock.Anything, int64(42)).Return(nil, domain.ErrNotFound).Once()

		rawKey, key, err := service.Issue(context.Background(), 42, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, rawKey)
		assert.Nil(t, key)
		repo.AssertNotCalled(t, "CreateAPIKey", mock.Anything, mock.Anything)
	})
}

func TestService_Revoke(t *testing.T) {
	t.Run("revoked key stays in history", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		repo.On("DeactivateAPIKey", mock.Anything, int64(10)).Return(nil).Once()

		assert.NoError(t, service.Revoke(context.Background(), 10))
		repo.AssertExpectations(t)
	})

	t.Run("unknown key", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		repo.On("DeactivateAPIKey", mock.Anything, int64(99)).Return(domain.ErrNotFound).Once()

		assert.ErrorIs(t, service.Revoke(context.Background(), 99), domain.ErrNotFound)
	})
}
