package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/lib/sl"
	"github.com/telegram-suite/identity-hub/internal/metrics"
)

// Handler обрабатывает тело одного сообщения. Возврат ошибки означает,
// что сообщение уходит в dead-letter очередь.
type Handler func(ctx context.Context, body []byte) error

// ConsumeMessages запускает последовательное потребление очереди.
// Каждое сообщение доводится до конца (декодирование, аутентификация,
// мутация, подтверждение) до взятия следующего: повторных попыток
// в процессе нет, любая ошибка терминальна и эскалируется в DLQ
// через nack без requeue.
func ConsumeMessages(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler Handler) error {
	const op = "rabbitmq.ConsumeMessages"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				settleDelivery(ctx, d, queueName, log, handler)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// settleDelivery выполняет обработчик и завершает сообщение:
// ack при успехе, nack без requeue при любой ошибке. Контекст
// обработчика не наследует отмену: сообщение в полёте при останове
// доводится до конца и подтверждается, иначе остановка процесса
// превращала бы здоровое сообщение в dead letter.
func settleDelivery(ctx context.Context, d amqp.Delivery, queueName string, log *slog.Logger, handler Handler) {
	err := handler(context.WithoutCancel(ctx), d.Body)
	if err != nil {
		logHandlerError(log, queueName, d.MessageId, err)
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to nack message", slog.String("queue", queueName), sl.Err(nackErr))
		}
		metrics.MessagesSettled.WithLabelValues(queueName, metrics.OutcomeDeadLetter).Inc()
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", slog.String("queue", queueName), sl.Err(ackErr))
		return
	}
	metrics.MessagesSettled.WithLabelValues(queueName, metrics.OutcomeAck).Inc()
}

// logHandlerError логирует ошибку обработчика с учётом классификации:
// транзиентные сбои инфраструктуры заметнее постоянных отказов данных.
func logHandlerError(log *slog.Logger, queueName, messageID string, err error) {
	attrs := []any{
		slog.String("queue", queueName),
		slog.String("message_id", messageID),
		slog.Bool("permanent", domain.Permanent(err)),
		sl.Err(err),
	}
	if domain.Permanent(err) {
		log.Warn("message rejected, routing to dead-letter queue", attrs...)
		return
	}
	log.Error("infrastructure failure, routing to dead-letter queue", attrs...)
}

// ObserveDeadLetters запускает наблюдателя DLQ: каждое сообщение
// передаётся observe и затем подтверждается навсегда — обратно
// в обработку dead-letter сообщения не возвращаются.
func ObserveDeadLetters(ctx context.Context, ch *amqp.Channel, log *slog.Logger, observe func(d amqp.Delivery)) error {
	const op = "rabbitmq.ObserveDeadLetters"
	delivery, err := ch.Consume(
		DeadLetterQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				observe(d)
				metrics.DeadLettersObserved.Inc()
				if ackErr := d.Ack(false); ackErr != nil {
					log.Error("failed to ack dead letter", sl.Err(ackErr))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
