// Package domain определяет классификацию ошибок ядра обработки событий.
//
// Каждая ошибка бизнес-логики и хранилища сводится к одному из
// сторожевых значений ниже. Потребитель очереди по этой классификации
// решает только как логировать: подтверждение сообщения при любой
// ошибке не происходит, сообщение уходит в dead-letter очередь.
package domain

import "errors"

var (
	// ErrInvalidEvent - сообщение не декодируется или не проходит
	// валидацию контракта. Повторная доставка бессмысленна.
	ErrInvalidEvent = errors.New("invalid event payload")

	// ErrInvalidData - нарушение ограничений данных (уникальность,
	// внешний ключ, диапазон значений).
	ErrInvalidData = errors.New("invalid data")

	// ErrNotFound - запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")

	// ErrConflict - операция нарушает инвариант состояния,
	// например повторная активная подписка на тот же тариф.
	ErrConflict = errors.New("conflict")

	// ErrDenied - API-ключ сервиса не прошел проверку.
	ErrDenied = errors.New("authentication denied")

	// ErrUnavailable - инфраструктурный сбой (потеря соединения,
	// таймаут). Единственный транзиентный класс.
	ErrUnavailable = errors.New("storage unavailable")
)

// Permanent сообщает, что повторная доставка сообщения с этой ошибкой
// никогда не приведет к успеху. Неклассифицированные ошибки считаются
// постоянными: безопаснее не зациклить недоставляемое сообщение.
func Permanent(err error) bool {
	return !errors.Is(err, ErrUnavailable)
}
