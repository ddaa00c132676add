// Package dispatch связывает очереди доменных событий с обработчиками.
//
// Протокол обработки одного сообщения: декодирование конверта и
// типизированной нагрузки, аутентификация сервиса-отправителя,
// доменная мутация. Любая ошибка возвращается потребителю очереди,
// который отвергает сообщение без повторной доставки.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/telegram-suite/identity-hub/internal/contracts"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// Authenticator проверяет API-ключ сервиса-отправителя.
type Authenticator interface {
	Authenticate(ctx context.Context, serviceID int64, presentedKey string) error
}

// UserService выполняет мутации пользователей.
type UserService interface {
	Register(ctx context.Context, serviceID int64, form contracts.UserRegistered) (*models.User, error)
	Update(ctx context.Context, form contracts.UserUpdated) (*models.User, error)
}

// SubscriptionService выдаёт подписки.
type SubscriptionService interface {
	Subscribe(ctx context.Context, form contracts.SubscriptionCreated) (*models.UserSubscription, error)
}

// PaymentService фиксирует платежи.
type PaymentService interface {
	Record(ctx context.Context, form contracts.PaymentReceived) (*models.Payment, error)
}

// Dispatcher маршрутизирует события очередей в доменные сервисы.
type Dispatcher struct {
	auth          Authenticator
	users         UserService
	subscriptions SubscriptionService
	payments      PaymentService
	log           *slog.Logger
}

// New создает новый экземпляр Dispatcher.
func New(auth Authenticator, users UserService, subscriptions SubscriptionService, payments PaymentService, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		auth:          auth,
		users:         users,
		subscriptions: subscriptions,
		payments:      payments,
		log:           log,
	}
}

// HandleUserRegistered обрабатывает сообщение очереди user.registered.
func (d *Dispatcher) HandleUserRegistered(ctx context.Context, body []byte) error {
	env, payload, err := contracts.DecodeUserRegistered(body)
	if err != nil {
		return err
	}
	if err := d.auth.Authenticate(ctx, env.Meta.ServiceID, env.Meta.APIKey); err != nil {
		return err
	}
	_, err = d.users.Register(ctx, env.Meta.ServiceID, payload)
	return err
}

// HandleUserUpdated обрабатывает сообщение очереди user.updated.
func (d *Dispatcher) HandleUserUpdated(ctx context.Context, body []byte) error {
	env, payload, err := contracts.DecodeUserUpdated(body)
	if err != nil {
		return err
	}
	if err := d.auth.Authenticate(ctx, env.Meta.ServiceID, env.Meta.APIKey); err != nil {
		return err
	}
	_, err = d.users.Update(ctx, payload)
	return err
}

// HandleSubscriptionCreated обрабатывает сообщение очереди subscription.created.
func (d *Dispatcher) HandleSubscriptionCreated(ctx context.Context, body []byte) error {
	env, payload, err := contracts.DecodeSubscriptionCreated(body)
	if err != nil {
		return err
	}
	if err := d.auth.Authenticate(ctx, env.Meta.ServiceID, env.Meta.APIKey); err != nil {
		return err
	}
	_, err = d.subscriptions.Subscribe(ctx, payload)
	return err
}

// HandlePaymentReceived обрабатывает сообщение очереди payment.received.
func (d *Dispatcher) HandlePaymentReceived(ctx context.Context, body []byte) error {
	env, payload, err := contracts.DecodePaymentReceived(body)
	if err != nil {
		return err
	}
	if err := d.auth.Authenticate(ctx, env.Meta.ServiceID, env.Meta.APIKey); err != nil {
		return err
	}
	_, err = d.payments.Record(ctx, payload)
	return err
}
