package read

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/models"
)

type MockGetter struct {
	mock.Mock
}

func (m *MockGetter) GetUserByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockGetter) ListUserSubscriptions(ctx context.Context, userID int64) ([]*models.UserSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserSubscription), args.Error(1)
}

func (m *MockGetter) ListServiceLinks(ctx context.Context, userID int64) ([]*models.UserService, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserService), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	user := &models.User{ID: 7, ChatID: 100, Language: "ru", Active: true}

	tests := []struct {
		name           string
		chatID         string
		setupMock      func(*MockGetter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "profile assembled",
			chatID: "100",
			setupMock: func(m *MockGetter) {
				m.On("GetUserByChatID", mock.Anything, int64(100)).Return(user, nil).Once()
				m.On("ListUserSubscriptions", mock.Anything, int64(7)).
					Return([]*models.UserSubscription{{ID: 1, UserID: 7, SubscriptionID: 3, Active: true}}, nil).Once()
				m.On("ListServiceLinks", mock.Anything, int64(7)).
					Return([]*models.UserService{{ID: 1, UserID: 7, ServiceID: 1, Active: true}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"chat_id":100`,
		},
		{
			name:   "unknown user",
			chatID: "999",
			setupMock: func(m *MockGetter) {
				m.On("GetUserByChatID", mock.Anything, int64(999)).Return(nil, domain.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"failed to get user"`,
		},
		{
			name:           "malformed chat id",
			chatID:         "abc",
			setupMock:      func(_ *MockGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid chat id"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := new(MockGetter)
			tt.setupMock(getter)

			handler := New(logger, getter)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+tt.chatID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("chatID", tt.chatID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			getter.AssertExpectations(t)
		})
	}
}
