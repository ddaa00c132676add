// Утилита для ручной публикации событий в шину: собирает конверт
// с предъявленным API-ключом и кладет сообщение в очередь события.
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/telegram-suite/identity-hub/internal/config"
	"github.com/telegram-suite/identity-hub/internal/contracts"
	"github.com/telegram-suite/identity-hub/internal/rabbitmq"
)

func main() {
	var (
		event     = flag.String("event", contracts.EventUserRegistered, "event name, doubles as the queue name")
		serviceID = flag.Int64("service-id", 0, "sender service id")
		apiKey    = flag.String("api-key", "", "raw api key of the sender service")
		data      = flag.String("data", "{}", "event payload as JSON")
	)
	flag.Parse()

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	if !json.Valid([]byte(*data)) {
		logger.Error("payload is not valid JSON")
		os.Exit(1)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Error("failed to connect to broker", slog.Any("err", err))
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEventQueues())
	if err != nil {
		logger.Error("failed to setup channel", slog.Any("err", err))
		os.Exit(1)
	}
	defer ch.Close()

	env := contracts.Envelope{
		Event:   *event,
		Version: contracts.DefaultVersion,
		Meta: contracts.Meta{
			SentAt:    time.Now().UTC(),
			ServiceID: *serviceID,
			APIKey:    *apiKey,
		},
		Data: json.RawMessage(*data),
	}

	if err := rabbitmq.PublishMessage(ch, *event, env); err != nil {
		logger.Error("failed to publish event", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("event published", slog.String("event", *event))
}
