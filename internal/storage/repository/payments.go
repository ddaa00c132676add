package repository

import (
	"context"
	"database/sql"

	"github.com/telegram-suite/identity-hub/internal/models"
)

// CreatePayment сохраняет платёжную запись и возвращает её с ID.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (*models.Payment, error) {
	const op = "storage.CreatePayment"

	query := `INSERT INTO payments (user_id, amount, currency, provider, provider_payload, succeeded)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, user_id, amount, currency, provider, provider_payload, succeeded, created_at`
	created := &models.Payment{}
	var userID sql.NullInt64
	var payload []byte
	err := s.DB.QueryRowContext(ctx, query,
		p.UserID, p.Amount, p.Currency, p.Provider, []byte(p.ProviderPayload), p.Succeeded).Scan(
		&created.ID, &userID, &created.Amount, &created.Currency, &created.Provider,
		&payload, &created.Succeeded, &created.CreatedAt)
	if err != nil {
		return nil, classify(op, err)
	}
	if userID.Valid {
		created.UserID = &userID.Int64
	}
	created.ProviderPayload = payload
	return created, nil
}

// ListPaymentsByUser возвращает платежи пользователя, свежие первыми.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userID int64) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByUser"

	query := `SELECT id, user_id, amount, currency, provider, provider_payload, succeeded, created_at
			  FROM payments
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, classify(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var uid sql.NullInt64
		var payload []byte
		if err := rows.Scan(&p.ID, &uid, &p.Amount, &p.Currency, &p.Provider,
			&payload, &p.Succeeded, &p.CreatedAt); err != nil {
			return nil, classify(op, err)
		}
		if uid.Valid {
			p.UserID = &uid.Int64
		}
		p.ProviderPayload = payload
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return result, nil
}
