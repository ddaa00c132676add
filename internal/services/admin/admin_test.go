package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/lib/jwt"
	"github.com/telegram-suite/identity-hub/internal/lib/secrets"
	"github.com/telegram-suite/identity-hub/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateAdmin(ctx context.Context, a models.Admin) (*models.Admin, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockRepository) TouchAdminLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Register(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo, jwt.NewMaker("secret", time.Hour), newNoopLogger())

	repo.On("CreateAdmin", mock.Anything, mock.MatchedBy(func(a models.Admin) bool {
		return a.Email == "admin@example.com" &&
			a.Role == models.RoleManager &&
			a.PasswordHash != "" && a.PasswordHash != "password123" &&
			secrets.CompareHash(a.PasswordHash, "password123") == nil
	})).Return(&models.Admin{ID: 1, Email: "admin@example.com", Role: models.RoleManager}, nil).Once()

	created, err := service.Register(context.Background(), "admin", "admin@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	repo.AssertExpectations(t)
}

func TestService_Login(t *testing.T) {
	password := "password123"
	hash, err := secrets.GetHash(password)
	require.NoError(t, err)

	active := &models.Admin{
		ID:           1,
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         models.RoleManager,
		Active:       true,
	}

	t.Run("valid credentials yield a token", func(t *testing.T) {
		repo := new(MockRepository)
		maker := jwt.NewMaker("secret", time.Hour)
		service := New(repo, maker, newNoopLogger())

		repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").Return(active, nil).Once()
		repo.On("TouchAdminLastLogin", mock.Anything, int64(1)).Return(nil).Once()

		token, role, err := service.Login(context.Background(), "admin@example.com", password)
		require.NoError(t, err)
		assert.Equal(t, models.RoleManager, role)

		claims, err := maker.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", claims.Email)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, jwt.NewMaker("secret", time.Hour), newNoopLogger())

		repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").Return(active, nil).Once()

		token, _, err := service.Login(context.Background(), "admin@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrDenied)
		assert.Empty(t, token)
	})

	t.Run("unknown email is the same denial", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, jwt.NewMaker("secret", time.Hour), newNoopLogger())

		repo.On("GetAdminByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound).Once()

		token, _, err := service.Login(context.Background(), "nobody@example.com", password)
		assert.ErrorIs(t, err, domain.ErrDenied)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, token)
	})

	t.Run("deactivated admin cannot log in", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, jwt.NewMaker("secret", time.Hour), newNoopLogger())

		inactive := *active
		inactive.Active = false
		repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").Return(&inactive, nil).Once()

		token, _, err := service.Login(context.Background(), "admin@example.com", password)
		assert.ErrorIs(t, err, domain.ErrDenied)
		assert.Empty(t, token)
	})

	t.Run("touch failure does not break login", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, jwt.NewMaker("secret", time.Hour), newNoopLogger())

		repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").Return(active, nil).Once()
		repo.On("TouchAdminLastLogin", mock.Anything, int64(1)).Return(domain.ErrUnavailable).Once()

		token, _, err := service.Login(context.Background(), "admin@example.com", password)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}
