package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/telegram-suite/identity-hub/internal/domain"
)

// classify сводит ошибку базы данных к доменной классификации:
// нарушения ограничений — ошибка данных клиента, проблемы соединения —
// транзиентная недоступность, sql.ErrNoRows — отсутствие сущности.
// Неопознанные ошибки проходят как есть и трактуются выше как внутренние.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code),
			pgerrcode.IsDataException(pgErr.Code):
			return fmt.Errorf("%s: %s: %w", op, pgErr.Code, domain.ErrInvalidData)
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsOperatorIntervention(pgErr.Code):
			return fmt.Errorf("%s: %s: %w", op, pgErr.Code, domain.ErrUnavailable)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation сообщает о нарушении уникального ограничения.
// Пустое имя ограничения совпадает с любым.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
