// Package catalog содержит бизнес-логику справочника тарифов,
// включая кеширование: тарифы читаются ботами намного чаще,
// чем меняются администратором.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/telegram-suite/identity-hub/internal/models"
)

// cacheTTL время жизни тарифа в кеше.
const cacheTTL = time.Hour

// listCacheKey ключ кеша полного списка тарифов.
const listCacheKey = "subscriptions:all"

// Repository определяет методы хранилища для тарифов.
type Repository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	GetSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	UpdateSubscription(ctx context.Context, id int64, patch models.SubscriptionPatch) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции над справочником тарифов.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (s *Service) cacheKey(id int64) string {
	return fmt.Sprintf("subscription:%d", id)
}

// Create создает новый тариф и инвалидирует кеш списка.
func (s *Service) Create(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	created, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("failed to invalidate subscriptions cache", slog.Any("err", err))
	}
	s.log.Info("created subscription plan", slog.Int64("id", created.ID))
	return created, nil
}

// Get возвращает тариф по ID, используя кеш или хранилище.
func (s *Service) Get(ctx context.Context, id int64) (*models.Subscription, error) {
	var cached *models.Subscription
	key := s.cacheKey(id)
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read subscription from cache", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, sub, cacheTTL); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", key), slog.Any("err", err))
	}
	return sub, nil
}

// List возвращает все тарифы, используя кеш или хранилище.
func (s *Service) List(ctx context.Context) ([]*models.Subscription, error) {
	var cached []*models.Subscription
	found, err := s.cache.Get(ctx, listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read subscriptions from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, listCacheKey, subs, cacheTTL); err != nil {
		s.log.Warn("failed to cache subscriptions", slog.Any("err", err))
	}
	return subs, nil
}

// Update применяет частичное обновление тарифа и обновляет кеш.
func (s *Service) Update(ctx context.Context, id int64, patch models.SubscriptionPatch) (*models.Subscription, error) {
	updated, err := s.repo.UpdateSubscription(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, s.cacheKey(id), updated, cacheTTL); err != nil {
		s.log.Warn("failed to cache subscription", slog.Any("err", err))
	}
	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("failed to invalidate subscriptions cache", slog.Any("err", err))
	}
	return updated, nil
}

// Delete удаляет тариф и инвалидирует кеш.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSubscription(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, s.cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.Any("err", err))
	}
	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("failed to invalidate subscriptions cache", slog.Any("err", err))
	}
	return nil
}
