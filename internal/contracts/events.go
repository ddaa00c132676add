package contracts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// BirthdayLayout формат даты рождения в событиях.
const BirthdayLayout = "2006-01-02"

// UserRegistered — нагрузка события user.registered.
type UserRegistered struct {
	ChatID   int64   `json:"chat_id" validate:"required"`
	Username string  `json:"username" validate:"required,max=64"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=15"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Birthday *string `json:"birthday,omitempty"` // в формате 2006-01-02
	Language *string `json:"language,omitempty" validate:"omitempty,oneof=ru en"`
}

// UserUpdated — нагрузка события user.updated. Все поля, кроме chat_id,
// опциональны: отсутствующее поле не трогает значение в базе,
// присутствующее перезаписывает его, явный null очищает
// nullable-колонку. Эти три состояния различает Optional.
type UserUpdated struct {
	ChatID   int64                   `json:"chat_id" validate:"required"`
	Username models.Optional[string] `json:"username,omitzero" validate:"omitempty,max=64"`
	Phone    models.Optional[string] `json:"phone,omitzero" validate:"omitempty,max=15"`
	Email    models.Optional[string] `json:"email,omitzero" validate:"omitempty,email"`
	Birthday models.Optional[string] `json:"birthday,omitzero"`
	Language models.Optional[string] `json:"language,omitzero" validate:"omitempty,oneof=ru en"`
	Active   models.Optional[bool]   `json:"active,omitzero"`
}

// SubscriptionCreated — нагрузка события subscription.created.
type SubscriptionCreated struct {
	ChatID         int64   `json:"chat_id" validate:"required"`
	SubscriptionID int64   `json:"subscription_id" validate:"required"`
	Source         *string `json:"source,omitempty" validate:"omitempty,max=64"`
}

// PaymentReceived — нагрузка события payment.received.
type PaymentReceived struct {
	ChatID          int64           `json:"chat_id" validate:"required"`
	Amount          float64         `json:"amount" validate:"required,gt=0"`
	Currency        string          `json:"currency" validate:"required,max=8"`
	Provider        string          `json:"provider" validate:"required,max=64"`
	ProviderPayload json.RawMessage `json:"provider_payload,omitempty"`
	Succeeded       bool            `json:"succeeded"`
}

// DecodeUserRegistered разбирает сообщение очереди user.registered.
func DecodeUserRegistered(body []byte) (*Envelope, UserRegistered, error) {
	var payload UserRegistered
	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, payload, err
	}
	if err := checkEvent(env, EventUserRegistered); err != nil {
		return nil, payload, err
	}
	payload, err = decodePayload[UserRegistered](env)
	return env, payload, err
}

// DecodeUserUpdated разбирает сообщение очереди user.updated.
func DecodeUserUpdated(body []byte) (*Envelope, UserUpdated, error) {
	var payload UserUpdated
	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, payload, err
	}
	if err := checkEvent(env, EventUserUpdated); err != nil {
		return nil, payload, err
	}
	payload, err = decodePayload[UserUpdated](env)
	return env, payload, err
}

// DecodeSubscriptionCreated разбирает сообщение очереди subscription.created.
func DecodeSubscriptionCreated(body []byte) (*Envelope, SubscriptionCreated, error) {
	var payload SubscriptionCreated
	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, payload, err
	}
	if err := checkEvent(env, EventSubscriptionCreated); err != nil {
		return nil, payload, err
	}
	payload, err = decodePayload[SubscriptionCreated](env)
	return env, payload, err
}

// DecodePaymentReceived разбирает сообщение очереди payment.received.
func DecodePaymentReceived(body []byte) (*Envelope, PaymentReceived, error) {
	var payload PaymentReceived
	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, payload, err
	}
	if err := checkEvent(env, EventPaymentReceived); err != nil {
		return nil, payload, err
	}
	payload, err = decodePayload[PaymentReceived](env)
	return env, payload, err
}

// ParseBirthday конвертирует строку даты рождения из события.
func ParseBirthday(s *string) (*time.Time, error) {
	const op = "contracts.ParseBirthday"
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(BirthdayLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, domain.ErrInvalidEvent)
	}
	return &t, nil
}

// ParseBirthdayField конвертирует опциональное поле даты рождения,
// сохраняя присутствие: null остаётся null и очищает колонку.
func ParseBirthdayField(o models.Optional[string]) (models.Optional[time.Time], error) {
	const op = "contracts.ParseBirthdayField"
	if !o.Set || o.Value == nil {
		return models.Optional[time.Time]{Set: o.Set}, nil
	}
	t, err := time.Parse(BirthdayLayout, *o.Value)
	if err != nil {
		return models.Optional[time.Time]{}, fmt.Errorf("%s: %v: %w", op, err, domain.ErrInvalidEvent)
	}
	return models.SetTo(t), nil
}
