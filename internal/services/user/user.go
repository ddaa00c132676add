// Package user содержит бизнес-логику регистрации и обновления
// пользователей по событиям шины.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/telegram-suite/identity-hub/internal/contracts"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// defaultLanguage язык пользователя, если событие его не принесло.
const defaultLanguage = "ru"

// Repository определяет методы хранилища для работы с пользователями.
type Repository interface {
	// RegisterUser находит или создает пользователя по chat_id и
	// гарантирует связь с сервисом в одной транзакции.
	RegisterUser(ctx context.Context, user models.User, serviceID int64) (*models.User, bool, error)
	// UpdateUserByChatID применяет частичное обновление.
	UpdateUserByChatID(ctx context.Context, chatID int64, patch models.UserPatch) (*models.User, error)
}

// Service реализует операции над пользователями.
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

// Register обрабатывает событие user.registered: идемпотентный
// lookup-or-create по chat_id плюс привязка к сервису. Повторная
// доставка того же события не оставляет следов сверх первого
// применения: существующий пользователь переиспользуется, вставка
// связи игнорирует дубликат.
func (s *Service) Register(ctx context.Context, serviceID int64, form contracts.UserRegistered) (*models.User, error) {
	const op = "user.Register"

	birthday, err := contracts.ParseBirthday(form.Birthday)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	language := defaultLanguage
	if form.Language != nil {
		language = *form.Language
	}

	candidate := models.User{
		ChatID:   form.ChatID,
		Username: &form.Username,
		Phone:    form.Phone,
		Email:    form.Email,
		Birthday: birthday,
		Language: language,
	}

	created, isNew, err := s.repo.RegisterUser(ctx, candidate, serviceID)
	if err != nil {
		return nil, err
	}

	if isNew {
		s.log.Info("registered new user",
			slog.Int64("chat_id", created.ChatID),
			slog.Int64("service_id", serviceID))
	} else {
		s.log.Info("user already registered, ensured service link",
			slog.Int64("chat_id", created.ChatID),
			slog.Int64("service_id", serviceID))
	}
	return created, nil
}

// Update обрабатывает событие user.updated: находит пользователя
// по chat_id и применяет патч. Поля, отсутствующие в событии,
// остаются нетронутыми; явный null очищает nullable-колонку.
// Отсутствие пользователя — постоянная ошибка.
func (s *Service) Update(ctx context.Context, form contracts.UserUpdated) (*models.User, error) {
	const op = "user.Update"

	birthday, err := contracts.ParseBirthdayField(form.Birthday)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	patch := models.UserPatch{
		Username: form.Username,
		Phone:    form.Phone,
		Email:    form.Email,
		Birthday: birthday,
		Language: form.Language,
		Active:   form.Active,
	}

	updated, err := s.repo.UpdateUserByChatID(ctx, form.ChatID, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info("updated user", slog.Int64("chat_id", updated.ChatID))
	return updated, nil
}
