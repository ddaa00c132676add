// Package worker собирает обработчик событийной шины: подключение
// к брокеру, объявление очередей и запуск консьюмеров.
package worker

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/telegram-suite/identity-hub/internal/config"
	"github.com/telegram-suite/identity-hub/internal/contracts"
	"github.com/telegram-suite/identity-hub/internal/migrations"
	"github.com/telegram-suite/identity-hub/internal/rabbitmq"
	authservice "github.com/telegram-suite/identity-hub/internal/services/auth"
	"github.com/telegram-suite/identity-hub/internal/services/deadletter"
	"github.com/telegram-suite/identity-hub/internal/services/dispatch"
	paymentservice "github.com/telegram-suite/identity-hub/internal/services/payment"
	subscriptionservice "github.com/telegram-suite/identity-hub/internal/services/subscription"
	userservice "github.com/telegram-suite/identity-hub/internal/services/user"
	"github.com/telegram-suite/identity-hub/internal/storage/repository"
)

// App инкапсулирует консьюмер событий и его зависимости.
type App struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	db         *repository.Storage
	dispatcher *dispatch.Dispatcher
	observer   *deadletter.Observer
	logger     *slog.Logger
}

// New собирает воркер: хранилище, миграции, брокер, очереди и диспетчер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEventQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	authService := authservice.New(db, logger)
	dispatcher := dispatch.New(
		authService,
		userservice.New(db, logger),
		subscriptionservice.New(db, logger),
		paymentservice.New(db, logger),
		logger,
	)

	return &App{
		conn:       conn,
		ch:         ch,
		db:         db,
		dispatcher: dispatcher,
		observer:   deadletter.New(logger),
		logger:     logger,
	}, nil
}

// Run запускает консьюмеры всех событийных очередей и наблюдателя DLQ,
// затем блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	consumers := []struct {
		queue   string
		handler rabbitmq.Handler
	}{
		{contracts.EventUserRegistered, a.dispatcher.HandleUserRegistered},
		{contracts.EventUserUpdated, a.dispatcher.HandleUserUpdated},
		{contracts.EventSubscriptionCreated, a.dispatcher.HandleSubscriptionCreated},
		{contracts.EventPaymentReceived, a.dispatcher.HandlePaymentReceived},
	}
	for _, c := range consumers {
		if err := rabbitmq.ConsumeMessages(ctx, a.ch, c.queue, a.logger, c.handler); err != nil {
			a.logger.Error("failed to start consumer",
				slog.String("queue", c.queue), slog.Any("err", err))
			return err
		}
		a.logger.Info("consumer started", slog.String("queue", c.queue))
	}

	if err := rabbitmq.ObserveDeadLetters(ctx, a.ch, a.logger, a.observer.Observe); err != nil {
		a.logger.Error("failed to start dead-letter observer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("event worker shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", slog.Any("err", err))
	}
	return nil
}
