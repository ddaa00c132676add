// Package auth реализует аутентификацию сервисов по API-ключу
// перед любой доменной мутацией.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/lib/secrets"
)

// KeyRepository описывает выборку кандидатов для проверки ключа.
type KeyRepository interface {
	// ListActiveKeyHashes возвращает хеши активных ключей сервиса.
	ListActiveKeyHashes(ctx context.Context, serviceID int64) ([]string, error)
}

// Service проверяет предъявленные API-ключи.
type Service struct {
	keys KeyRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(keys KeyRepository, log *slog.Logger) *Service {
	return &Service{
		keys: keys,
		log:  log,
	}
}

// Authenticate проверяет ключ, предъявленный от имени сервиса.
// Соль bcrypt вшита в хеш, поэтому ключ нельзя найти прямым сравнением:
// перебираются хеши активных ключей заявленного service_id, успех —
// первое совпадение. Несовпадение — постоянный отказ: без выпуска
// нового ключа сообщение корректным не станет.
func (s *Service) Authenticate(ctx context.Context, serviceID int64, presentedKey string) error {
	const op = "auth.Authenticate"

	hashes, err := s.keys.ListActiveKeyHashes(ctx, serviceID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, hash := range hashes {
		if secrets.CompareHash(hash, presentedKey) == nil {
			return nil
		}
	}

	s.log.Warn("api key rejected",
		slog.Int64("service_id", serviceID),
		slog.Int("candidates", len(hashes)))
	return fmt.Errorf("%s: %w", op, domain.ErrDenied)
}
