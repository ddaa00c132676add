package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/telegram-suite/identity-hub/internal/domain"
	"github.com/telegram-suite/identity-hub/internal/models"
)

const subscriptionColumns = `id, name, description, term_days, price, sale_percent, is_trial_available`

func scanSubscription(row *sql.Row) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var description sql.NullString
	err := row.Scan(&sub.ID, &sub.Name, &description, &sub.TermDays,
		&sub.Price, &sub.SalePercent, &sub.TrialAvailable)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		sub.Description = &description.String
	}
	return sub, nil
}

// CreateSubscription сохраняет новый тариф.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"

	query := `INSERT INTO subscriptions (name, description, term_days, price, sale_percent, is_trial_available)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + subscriptionColumns
	created, err := scanSubscription(s.DB.QueryRowContext(ctx, query,
		sub.Name, sub.Description, sub.TermDays, sub.Price, sub.SalePercent, sub.TrialAvailable))
	if err != nil {
		return nil, classify(op, err)
	}
	return created, nil
}

// GetSubscription возвращает тариф по ID.
func (s *Storage) GetSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	const op = "storage.GetSubscription"

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, classify(op, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает все тарифы.
func (s *Storage) ListSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY id`)
	if err != nil {
		return nil, classify(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		sub := &models.Subscription{}
		var description sql.NullString
		if err := rows.Scan(&sub.ID, &sub.Name, &description, &sub.TermDays,
			&sub.Price, &sub.SalePercent, &sub.TrialAvailable); err != nil {
			return nil, classify(op, err)
		}
		if description.Valid {
			sub.Description = &description.String
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return result, nil
}

// UpdateSubscription применяет частичное обновление тарифа.
func (s *Storage) UpdateSubscription(ctx context.Context, id int64, patch models.SubscriptionPatch) (*models.Subscription, error) {
	const op = "storage.UpdateSubscription"

	var result *models.Subscription
	err := s.withinTx(ctx, op, func(tx *sql.Tx) error {
		current, err := scanSubscription(tx.QueryRowContext(ctx,
			`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id))
		if err != nil {
			return classify(op, err)
		}

		var cols []string
		var args []any
		add := func(col string, v any) {
			cols = append(cols, col)
			args = append(args, v)
		}
		if patch.Name.Set {
			add("name", patch.Name.Value)
		}
		if patch.Description.Set {
			add("description", patch.Description.Value)
		}
		if patch.TermDays.Set {
			add("term_days", patch.TermDays.Value)
		}
		if patch.Price.Set {
			add("price", patch.Price.Value)
		}
		if patch.SalePercent.Set {
			add("sale_percent", patch.SalePercent.Value)
		}
		if patch.TrialAvailable.Set {
			add("is_trial_available", patch.TrialAvailable.Value)
		}
		if len(cols) == 0 {
			result = current
			return nil
		}

		query, args := buildUpdate("subscriptions", cols, args, "id", id, subscriptionColumns)
		result, err = scanSubscription(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return classify(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteSubscription удаляет тариф. Внешний ключ user_subscriptions
// объявлен RESTRICT: тариф с выданными подписками удалить нельзя,
// попытка возвращает ошибку данных, а не тихо осиротевшие записи.
func (s *Storage) DeleteSubscription(ctx context.Context, id int64) error {
	const op = "storage.DeleteSubscription"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return classify(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return classify(op, sql.ErrNoRows)
	}
	return nil
}

// FindActiveUserSubscription ищет активную подписку пользователя
// на тариф. Отсутствие записи — не ошибка.
func (s *Storage) FindActiveUserSubscription(ctx context.Context, userID, subscriptionID int64) (*models.UserSubscription, bool, error) {
	const op = "storage.FindActiveUserSubscription"

	query := `SELECT id, user_id, subscription_id, started_at, expires_at, active, source
			  FROM user_subscriptions
			  WHERE user_id = $1 AND subscription_id = $2 AND active`
	entry := &models.UserSubscription{}
	var expiresAt sql.NullTime
	var source sql.NullString
	err := s.DB.QueryRowContext(ctx, query, userID, subscriptionID).Scan(
		&entry.ID, &entry.UserID, &entry.SubscriptionID, &entry.StartedAt,
		&expiresAt, &entry.Active, &source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(op, err)
	}
	if expiresAt.Valid {
		entry.ExpiresAt = &expiresAt.Time
	}
	if source.Valid {
		entry.Source = &source.String
	}
	return entry, true, nil
}

// CreateUserSubscription сохраняет факт подписки. Вторая активная
// подписка на ту же пару (user, plan) упирается в частичный уникальный
// индекс и возвращает конфликт: гонка одновременных выдач разрешается
// на уровне базы.
func (s *Storage) CreateUserSubscription(ctx context.Context, entry models.UserSubscription) (*models.UserSubscription, error) {
	const op = "storage.CreateUserSubscription"

	query := `INSERT INTO user_subscriptions (user_id, subscription_id, expires_at, active, source)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, user_id, subscription_id, started_at, expires_at, active, source`
	created := &models.UserSubscription{}
	var expiresAt sql.NullTime
	var source sql.NullString
	err := s.DB.QueryRowContext(ctx, query,
		entry.UserID, entry.SubscriptionID, entry.ExpiresAt, entry.Active, entry.Source).Scan(
		&created.ID, &created.UserID, &created.SubscriptionID, &created.StartedAt,
		&expiresAt, &created.Active, &source)
	if isUniqueViolation(err, "uq_user_subscription_active") {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	if err != nil {
		return nil, classify(op, err)
	}
	if expiresAt.Valid {
		created.ExpiresAt = &expiresAt.Time
	}
	if source.Valid {
		created.Source = &source.String
	}
	return created, nil
}

// ListUserSubscriptions возвращает подписки пользователя.
func (s *Storage) ListUserSubscriptions(ctx context.Context, userID int64) ([]*models.UserSubscription, error) {
	const op = "storage.ListUserSubscriptions"

	query := `SELECT id, user_id, subscription_id, started_at, expires_at, active, source
			  FROM user_subscriptions
			  WHERE user_id = $1
			  ORDER BY started_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, classify(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserSubscription
	for rows.Next() {
		entry := &models.UserSubscription{}
		var expiresAt sql.NullTime
		var source sql.NullString
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.SubscriptionID,
			&entry.StartedAt, &expiresAt, &entry.Active, &source); err != nil {
			return nil, classify(op, err)
		}
		if expiresAt.Valid {
			entry.ExpiresAt = &expiresAt.Time
		}
		if source.Valid {
			entry.Source = &source.String
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return result, nil
}
