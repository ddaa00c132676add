// Package subscription содержит бизнес-логику выдачи подписок.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/telegram-suite/identity-hub/internal/contracts"
	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// Repository определяет методы хранилища для выдачи подписки.
type Repository interface {
	// GetUserByChatID возвращает пользователя по chat_id.
	GetUserByChatID(ctx context.Context, chatID int64) (*models.User, error)
	// GetSubscription возвращает тариф по ID.
	GetSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	// FindActiveUserSubscription ищет активную подписку на пару (user, plan).
	FindActiveUserSubscription(ctx context.Context, userID, subscriptionID int64) (*models.UserSubscription, bool, error)
	// CreateUserSubscription сохраняет факт подписки.
	CreateUserSubscription(ctx context.Context, entry models.UserSubscription) (*models.UserSubscription, error)
}

// Service реализует выдачу подписок по событиям шины.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Subscribe обрабатывает событие subscription.created: находит
// пользователя и тариф, отклоняет повторную активную подписку
// на тот же тариф и сохраняет новую запись. Для тарифа с term_days = 0
// подписка бессрочная, expires_at остаётся пустым.
//
// Проверка активной подписки до вставки даёт понятную ошибку,
// но гонку одновременных выдач разрешает частичный уникальный индекс:
// проигравшая вставка тоже возвращает ErrConflict.
func (s *Service) Subscribe(ctx context.Context, form contracts.SubscriptionCreated) (*models.UserSubscription, error) {
	const op = "subscription.Subscribe"

	user, err := s.repo.GetUserByChatID(ctx, form.ChatID)
	if err != nil {
		return nil, err
	}
	plan, err := s.repo.GetSubscription(ctx, form.SubscriptionID)
	if err != nil {
		return nil, err
	}

	if _, exists, err := s.repo.FindActiveUserSubscription(ctx, user.ID, plan.ID); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%s: active subscription already exists: %w", op, domain.ErrConflict)
	}

	var expiresAt *time.Time
	if plan.TermDays > 0 {
		t := s.now().UTC().Add(time.Duration(plan.TermDays) * 24 * time.Hour)
		expiresAt = &t
	}

	entry := models.UserSubscription{
		UserID:         user.ID,
		SubscriptionID: plan.ID,
		ExpiresAt:      expiresAt,
		Active:         true,
		Source:         form.Source,
	}
	created, err := s.repo.CreateUserSubscription(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.log.Info("issued subscription",
		slog.Int64("chat_id", user.ChatID),
		slog.Int64("subscription_id", plan.ID),
		slog.Any("expires_at", created.ExpiresAt))
	return created, nil
}
