package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"

	"github.com/telegram-suite/identity-hub/internal/contracts"
)

// Топология dead-letter маршрутизации. Отвергнутое сообщение любой
// рабочей очереди брокер перекладывает в dead.letters.
const (
	DeadLetterExchange   = "dlx.global"
	DeadLetterQueue      = "dead.letters"
	DeadLetterRoutingKey = "dead"
)

// QueueConfig описывает рабочую очередь воркера.
type QueueConfig struct {
	QueueName string
}

// GetEventQueues возвращает рабочие очереди доменных событий.
// Имя очереди совпадает с именем события.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: contracts.EventUserRegistered},
		{QueueName: contracts.EventUserUpdated},
		{QueueName: contracts.EventSubscriptionCreated},
		{QueueName: contracts.EventPaymentReceived},
	}
}

// SetupChannel открывает канал и объявляет полную топологию:
// DLX с очередью dead.letters и durable рабочие очереди,
// направляющие отвергнутые сообщения в DLX.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		DeadLetterExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = ch.QueueDeclare(
		DeadLetterQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to declare dead-letter queue: %w", op, err)
	}
	err = ch.QueueBind(DeadLetterQueue, DeadLetterRoutingKey, DeadLetterExchange, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to bind dead-letter queue: %w", op, err)
	}

	deadLetterArgs := amqp.Table{
		"x-dead-letter-exchange":    DeadLetterExchange,
		"x-dead-letter-routing-key": DeadLetterRoutingKey,
	}
	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			deadLetterArgs,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}
	}

	return ch, nil
}
