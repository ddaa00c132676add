// Package models содержит доменные структуры: пользователей,
// сервисы с их API-ключами, тарифы, подписки и платежи.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет пользователя, ключевая сущность для идентификации
// по Telegram chat_id. Один пользователь может быть привязан
// к нескольким сервисам через UserService.
type User struct {
	ID           int64      `json:"id"`                      // Внутренний идентификатор
	ChatID       int64      `json:"chat_id"`                 // Telegram chat_id, уникален
	Username     *string    `json:"username,omitempty"`      // Имя пользователя в Telegram
	Phone        *string    `json:"phone,omitempty"`         // Номер телефона
	Email        *string    `json:"email,omitempty"`         // Электронная почта
	Birthday     *time.Time `json:"birthday,omitempty"`      // Дата рождения
	Language     string     `json:"language"`                // Язык интерфейса, "ru" или "en"
	Active       bool       `json:"active"`                  // Признак активности учетной записи
	RegisteredAt time.Time  `json:"registered_at"`           // Дата регистрации
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"` // Дата последнего входа
}

// UserPatch описывает частичное обновление пользователя.
// Отсутствующее поле не трогается, присутствующее перезаписывается,
// явный null очищает nullable-колонку.
type UserPatch struct {
	Username Optional[string]
	Phone    Optional[string]
	Email    Optional[string]
	Birthday Optional[time.Time]
	Language Optional[string]
	Active   Optional[bool]
}

// IsEmpty сообщает, что патч не содержит ни одного поля.
func (p UserPatch) IsEmpty() bool {
	return !p.Username.Set && !p.Phone.Set && !p.Email.Set &&
		!p.Birthday.Set && !p.Language.Set && !p.Active.Set
}

// UserService фиксирует участие пользователя в сервисе.
// Пара user_id+service_id уникальна, жизненный цикл пользователя
// в каждом сервисе изолирован.
type UserService struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	ServiceID    int64      `json:"service_id"`
	RegisteredAt time.Time  `json:"registered_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	Active       bool       `json:"active"`
}
