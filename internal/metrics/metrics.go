// Package metrics объявляет счётчики Prometheus для конвейера событий.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исход обработки сообщения.
const (
	OutcomeAck        = "ack"
	OutcomeDeadLetter = "dead_letter"
)

var (
	// MessagesSettled считает завершённые сообщения по очереди и исходу.
	MessagesSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "identityhub_messages_settled_total",
		Help: "Processed queue messages by queue and outcome.",
	}, []string{"queue", "outcome"})

	// DeadLettersObserved считает сообщения, принятые наблюдателем DLQ.
	DeadLettersObserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "identityhub_dead_letters_observed_total",
		Help: "Messages drained from the dead-letter queue.",
	})
)
