// Package apikey содержит бизнес-логику выпуска и отзыва API-ключей.
package apikey

import (
	"context"
	"log/slog"

	"github.com/telegram-suite/identity-hub/internal/lib/secrets"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// Repository определяет методы хранилища для ключей.
type Repository interface {
	// GetService возвращает сервис по ID.
	GetService(ctx context.Context, id int64) (*models.Service, error)
	// CreateAPIKey сохраняет хеш нового ключа.
	CreateAPIKey(ctx context.Context, key models.APIKey) (*models.APIKey, error)
	// DeactivateAPIKey отзывает ключ.
	DeactivateAPIKey(ctx context.Context, id int64) error
}

// Service реализует выпуск и отзыв ключей.
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

// Issue выпускает новый ключ для сервиса. Сырое значение возвращается
// вызывающему ровно один раз, в базе остаётся только bcrypt-хеш.
func (s *Service) Issue(ctx context.Context, serviceID int64, description *string) (rawKey string, key *models.APIKey, err error) {
	svc, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		return "", nil, err
	}

	rawKey, err = secrets.NewAPIKey()
	if err != nil {
		return "", nil, err
	}
	hash, err := secrets.GetHash(rawKey)
	if err != nil {
		return "", nil, err
	}

	key, err = s.repo.CreateAPIKey(ctx, models.APIKey{
		ServiceID:   svc.ID,
		KeyHash:     hash,
		Description: description,
	})
	if err != nil {
		return "", nil, err
	}

	s.log.Info("issued api key",
		slog.Int64("service_id", svc.ID),
		slog.Int64("key_id", key.ID))
	return rawKey, key, nil
}

// Revoke отзывает ключ, не удаляя запись из истории.
func (s *Service) Revoke(ctx context.Context, keyID int64) error {
	if err := s.repo.DeactivateAPIKey(ctx, keyID); err != nil {
		return err
	}
	s.log.Info("revoked api key", slog.Int64("key_id", keyID))
	return nil
}
