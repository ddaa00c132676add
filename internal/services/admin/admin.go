// Package admin содержит логику учетных записей операторов:
// регистрация, вход по паролю и выпуск JWT для админской панели.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/lib/jwt"
	"github.com/telegram-suite/identity-hub/internal/lib/secrets"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// Repository описывает контракт хранилища администраторов.
type Repository interface {
	// CreateAdmin сохраняет нового администратора.
	CreateAdmin(ctx context.Context, a models.Admin) (*models.Admin, error)
	// GetAdminByEmail возвращает администратора по почте.
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	// TouchAdminLastLogin фиксирует вход.
	TouchAdminLastLogin(ctx context.Context, id int64) error
}

// Service отвечает за регистрацию и авторизацию администраторов.
type Service struct {
	repo     Repository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает администратора с хэшированием пароля
// и дефолтной ролью manager.
func (s *Service) Register(ctx context.Context, username, email, rawPassword string) (*models.Admin, error) {
	hashed, err := secrets.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	admin := models.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleManager,
	}
	created, err := s.repo.CreateAdmin(ctx, admin)
	if err != nil {
		return nil, err
	}
	s.log.Info("registered admin", slog.String("email", created.Email))
	return created, nil
}

// Login проверяет пароль администратора и возвращает JWT.
// Неверная почта и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (token, role string, err error) {
	const op = "admin.Login"

	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, domain.ErrDenied)
	}
	if !admin.Active {
		return "", "", fmt.Errorf("%s: %w", op, domain.ErrDenied)
	}
	if err := secrets.CompareHash(admin.PasswordHash, rawPassword); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, domain.ErrDenied)
	}

	token, err = s.jwtMaker.GenerateToken(admin.Email, admin.Role)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.TouchAdminLastLogin(ctx, admin.ID); err != nil {
		s.log.Warn("failed to record admin login time", slog.String("email", admin.Email))
	}
	return token, admin.Role, nil
}
