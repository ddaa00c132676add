// Package contracts описывает проводной формат сообщений шины событий.
//
// Каждое сообщение — Envelope с типом события, версией контракта,
// метаданными отправителя и полезной нагрузкой. Тип события выбирает
// схему payload; декодирование двухэтапное: сначала конверт,
// затем типизированная нагрузка.
package contracts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/lib/validation"
)

// Имена событий. Совпадают с именами очередей.
const (
	EventUserRegistered      = "user.registered"
	EventUserUpdated         = "user.updated"
	EventSubscriptionCreated = "subscription.created"
	EventPaymentReceived     = "payment.received"
)

// DefaultVersion версия контракта, подставляемая при публикации.
const DefaultVersion = "1.0"

// Meta — метаданные сообщения: время отправки и учетные данные
// сервиса-отправителя.
type Meta struct {
	SentAt    time.Time `json:"sent_at"`
	ServiceID int64     `json:"service_id" validate:"required"`
	APIKey    string    `json:"api_key" validate:"required"`
}

// Envelope — базовая структура сообщения шины.
type Envelope struct {
	Event   string          `json:"event" validate:"required"`
	Version string          `json:"version"`
	Meta    Meta            `json:"meta"`
	Data    json.RawMessage `json:"data" validate:"required"`
}

var validate = validation.New()

// DecodeEnvelope разбирает конверт сообщения. Любая ошибка декодирования
// или валидации — постоянная: такое сообщение не станет корректным
// при повторной доставке.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	const op = "contracts.DecodeEnvelope"
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, domain.ErrInvalidEvent)
	}
	if err := validate.Struct(env); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, domain.ErrInvalidEvent)
	}
	if err := validate.Struct(env.Meta); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, domain.ErrInvalidEvent)
	}
	return &env, nil
}

// decodePayload разбирает и валидирует типизированную нагрузку конверта.
func decodePayload[T any](env *Envelope) (T, error) {
	const op = "contracts.decodePayload"
	var payload T
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return payload, fmt.Errorf("%s: %v: %w", op, err, domain.ErrInvalidEvent)
	}
	if err := validate.Struct(payload); err != nil {
		return payload, fmt.Errorf("%s: %v: %w", op, err, domain.ErrInvalidEvent)
	}
	return payload, nil
}

// checkEvent сверяет имя события в конверте с ожидаемым для очереди.
func checkEvent(env *Envelope, want string) error {
	const op = "contracts.checkEvent"
	if env.Event != want {
		return fmt.Errorf("%s: got %q, want %q: %w", op, env.Event, want, domain.ErrInvalidEvent)
	}
	return nil
}
