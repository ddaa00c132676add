package payment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

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

func (m *MockRepository) GetUserByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) CreatePayment(ctx context.Context, p models.Payment) (*models.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockRepository) ListPaymentsByUser(ctx context.Context, userID int64) ([]*models.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Record(t *testing.T) {
	user := &models.User{ID: 7, ChatID: 100}
	rawPayload := json.RawMessage(`{"invoice":"abc"}`)

	t.Run("payment linked to resolved user", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		repo.On("GetUserByChatID", mock.Anything, int64(100)).Return(user, nil).Once()
		repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
			return p.UserID != nil && *p.UserID == 7 &&
				p.Amount == 149.99 && p.Currency == "RUB" &&
				p.Provider == "tribute" && p.Succeeded
		})).Return(&models.Payment{ID: 1, UserID: &user.ID, Amount: 149.99}, nil).Once()

		created, err := service.Record(context.Background(), contracts.PaymentReceived{
			ChatID:          100,
			Amount:          149.99,
			Currency:        "RUB",
			Provider:        "tribute",
			ProviderPayload: rawPayload,
			Succeeded:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("unknown chat id", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		repo.On("GetUserByChatID", mock.Anything, int64(999)).Return(nil, domain.ErrNotFound).Once()

		created, err := service.Record(context.Background(), contracts.PaymentReceived{
			ChatID: 999, Amount: 10, Currency: "RUB", Provider: "tribute",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, created)
		repo.AssertExpectations(t)
	})

	t.Run("failed payment is still recorded", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		repo.On("GetUserByChatID", mock.Anything, int64(100)).Return(user, nil).Once()
		repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
			return !p.Succeeded
		})).Return(&models.Payment{ID: 2, Succeeded: false}, nil).Once()

		created, err := service.Record(context.Background(), contracts.PaymentReceived{
			ChatID: 100, Amount: 10, Currency: "RUB", Provider: "telegram_stars", Succeeded: false,
		})
		require.NoError(t, err)
		assert.False(t, created.Succeeded)
		repo.AssertExpectations(t)
	})
}

func TestService_ListByChatID(t *testing.T) {
	user := &models.User{ID: 7, ChatID: 100}
	payments := []*models.Payment{{ID: 1}, {ID: 2}}

	t.Run("payments of resolved user", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		repo.On("GetUserByChatID", mock.Anything, int64(100)).Return(user, nil).Once()
		repo.On("ListPaymentsByUser", mock.Anything, int64(7)).Return(payments, nil).Once()

		result, err := service.ListByChatID(context.Background(), 100)
		require.NoError(t, err)
		assert.Equal(t, payments, result)
		repo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo, newNoopLogger())

		repo.On("GetUserByChatID", mock.Anything, int64(999)).Return(nil, domain.ErrNotFound).Once()

		result, err := service.ListByChatID(context.Background(), 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, result)
		repo.AssertExpectations(t)
	})
}
