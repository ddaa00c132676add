// Package payment содержит бизнес-логику фиксации платежей.
package payment

import (
	"context"
	"log/slog"

	"github.com/telegram-suite/identity-hub/internal/contracts"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// Repository определяет методы хранилища для записи платежей.
type Repository interface {
	// GetUserByChatID возвращает пользователя по chat_id.
	GetUserByChatID(ctx context.Context, chatID int64) (*models.User, error)
	// CreatePayment сохраняет платёжную запись.
	CreatePayment(ctx context.Context, p models.Payment) (*models.Payment, error)
	// ListPaymentsByUser возвращает платежи пользователя.
	ListPaymentsByUser(ctx context.Context, userID int64) ([]*models.Payment, error)
}

// Service реализует фиксацию платежей по событиям шины.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Record обрабатывает событие payment.received: разрешает chat_id
// в user_id и сохраняет платёж. Флаг succeeded берётся из события
// как есть, его интерпретация — дело провайдера.
func (s *Service) Record(ctx context.Context, form contracts.PaymentReceived) (*models.Payment, error) {
	user, err := s.repo.GetUserByChatID(ctx, form.ChatID)
	if err != nil {
		return nil, err
	}

	entry := models.Payment{
		UserID:          &user.ID,
		Amount:          form.Amount,
		Currency:        form.Currency,
		Provider:        form.Provider,
		ProviderPayload: form.ProviderPayload,
		Succeeded:       form.Succeeded,
	}
	created, err := s.repo.CreatePayment(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.log.Info("recorded payment",
		slog.Int64("chat_id", user.ChatID),
		slog.String("provider", created.Provider),
		slog.Bool("succeeded", created.Succeeded))
	return created, nil
}

// ListByChatID возвращает платежи пользователя для HTTP-чтения.
func (s *Service) ListByChatID(ctx context.Context, chatID int64) ([]*models.Payment, error) {
	user, err := s.repo.GetUserByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPaymentsByUser(ctx, user.ID)
}
