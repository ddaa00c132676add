package repository

import (
	"context"
	"database/sql"

	"github.com/telegram-suite/identity-hub/internal/models"
)

const serviceColumns = `id, name, description, owner_id`

func scanService(row *sql.Row) (*models.Service, error) {
	svc := &models.Service{}
	var description sql.NullString
	var ownerID sql.NullInt64
	if err := row.Scan(&svc.ID, &svc.Name, &description, &ownerID); err != nil {
		return nil, err
	}
	if description.Valid {
		svc.Description = &description.String
	}
	if ownerID.Valid {
		svc.OwnerID = &ownerID.Int64
	}
	return svc, nil
}

// CreateService сохраняет новый сервис и возвращает его с присвоенным ID.
func (s *Storage) CreateService(ctx context.Context, svc models.Service) (*models.Service, error) {
	const op = "storage.CreateService"

	query := `INSERT INTO services (name, description, owner_id)
			  VALUES ($1, $2, $3)
			  RETURNING ` + serviceColumns
	created, err := scanService(s.DB.QueryRowContext(ctx, query, svc.Name, svc.Description, svc.OwnerID))
	if err != nil {
		return nil, classify(op, err)
	}
	return created, nil
}

// GetService возвращает сервис по ID.
func (s *Storage) GetService(ctx context.Context, id int64) (*models.Service, error) {
	const op = "storage.GetService"

	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	svc, err := scanService(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, classify(op, err)
	}
	return svc, nil
}

// ListServices возвращает все сервисы. Справочные данные,
// объём таблицы мал.
func (s *Storage) ListServices(ctx context.Context) ([]*models.Service, error) {
	const op = "storage.ListServices"

	rows, err := s.DB.QueryContext(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY id`)
	if err != nil {
		return nil, classify(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Service
	for rows.Next() {
		svc := &models.Service{}
		var description sql.NullString
		var ownerID sql.NullInt64
		if err := rows.Scan(&svc.ID, &svc.Name, &description, &ownerID); err != nil {
			return nil, classify(op, err)
		}
		if description.Valid {
			svc.Description = &description.String
		}
		if ownerID.Valid {
			svc.OwnerID = &ownerID.Int64
		}
		result = append(result, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return result, nil
}

// UpdateService применяет частичное обновление. Имя сервиса неизменно,
// патч охватывает только описание и владельца.
func (s *Storage) UpdateService(ctx context.Context, id int64, patch models.ServicePatch) (*models.Service, error) {
	const op = "storage.UpdateService"

	var result *models.Service
	err := s.withinTx(ctx, op, func(tx *sql.Tx) error {
		current, err := scanService(tx.QueryRowContext(ctx,
			`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
		if err != nil {
			return classify(op, err)
		}
		// Обе колонки nullable: присутствующий null очищает описание
		// или отвязывает владельца.
		var cols []string
		var args []any
		if patch.Description.Set {
			cols = append(cols, "description")
			args = append(args, patch.Description.Value)
		}
		if patch.OwnerID.Set {
			cols = append(cols, "owner_id")
			args = append(args, patch.OwnerID.Value)
		}
		if len(cols) == 0 {
			result = current
			return nil
		}
		query, args := buildUpdate("services", cols, args, "id", id, serviceColumns)
		result, err = scanService(tx.QueryRowContext(ctx, query, args...))
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

// DeleteService удаляет сервис вместе с его API-ключами (каскад).
func (s *Storage) DeleteService(ctx context.Context, id int64) error {
	const op = "storage.DeleteService"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return classify(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return classify(op, sql.ErrNoRows)
	}
	return nil
}

// CreateAPIKey сохраняет хеш нового ключа сервиса.
func (s *Storage) CreateAPIKey(ctx context.Context, key models.APIKey) (*models.APIKey, error) {
	const op = "storage.CreateAPIKey"

	query := `INSERT INTO api_keys (service_id, key_hash, description)
			  VALUES ($1, $2, $3)
			  RETURNING id, service_id, key_hash, description, active, created_at`
	created := &models.APIKey{}
	var description sql.NullString
	err := s.DB.QueryRowContext(ctx, query, key.ServiceID, key.KeyHash, key.Description).Scan(
		&created.ID, &created.ServiceID, &created.KeyHash, &description,
		&created.Active, &created.CreatedAt)
	if err != nil {
		return nil, classify(op, err)
	}
	if description.Valid {
		created.Description = &description.String
	}
	return created, nil
}

// ListActiveKeyHashes возвращает хеши активных ключей сервиса.
// Выборка скована service_id: проверка ключа идёт перебором хешей,
// и кандидатов должно быть немного.
func (s *Storage) ListActiveKeyHashes(ctx context.Context, serviceID int64) ([]string, error) {
	const op = "storage.ListActiveKeyHashes"

	query := `SELECT key_hash FROM api_keys
			  WHERE service_id = $1 AND active`
	rows, err := s.DB.QueryContext(ctx, query, serviceID)
	if err != nil {
		return nil, classify(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, classify(op, err)
		}
		hashes = append(hashes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return hashes, nil
}

// DeactivateAPIKey отзывает ключ, не удаляя запись.
func (s *Storage) DeactivateAPIKey(ctx context.Context, id int64) error {
	const op = "storage.DeactivateAPIKey"

	res, err := s.DB.ExecContext(ctx,
		`UPDATE api_keys SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return classify(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return classify(op, sql.ErrNoRows)
	}
	return nil
}
