// Package deadletter реализует терминальный сток для сообщений,
// отвергнутых рабочими очередями.
package deadletter

import (
	"encoding/json"
	"log/slog"

	"github.com/streadway/amqp"
)

// Observer логирует каждое сообщение, дошедшее до dead.letters.
// Сообщения никогда не возвращаются в обработку: сток нужен
// для ручного разбора и алертинга.
type Observer struct {
	log *slog.Logger
}

// New создает новый экземпляр Observer.
func New(log *slog.Logger) *Observer {
	return &Observer{log: log}
}

// Observe записывает терминальное сообщение в лог вместе с очередью
// происхождения из заголовка x-death, который проставляет брокер.
func (o *Observer) Observe(d amqp.Delivery) {
	attrs := []any{
		slog.String("message_id", d.MessageId),
		slog.String("origin_queue", originQueue(d)),
		slog.String("event", eventName(d.Body)),
		slog.Int("body_bytes", len(d.Body)),
	}
	o.log.Error("message arrived at dead-letter queue", attrs...)
}

// originQueue извлекает очередь происхождения из заголовка x-death.
func originQueue(d amqp.Delivery) string {
	deaths, ok := d.Headers["x-death"].([]interface{})
	if !ok || len(deaths) == 0 {
		return ""
	}
	death, ok := deaths[0].(amqp.Table)
	if !ok {
		return ""
	}
	queue, _ := death["queue"].(string)
	return queue
}

// eventName достаёт имя события из тела, если оно вообще разбирается.
// Тело может быть произвольно повреждено, это не ошибка стока.
func eventName(body []byte) string {
	var probe struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Event
}
