package repository

import (
	"context"
	"database/sql"

	"github.com/telegram-suite/identity-hub/internal/models"
)

const adminColumns = `id, username, email, password_hash, role, active, created_at, last_login_at`

func scanAdmin(row *sql.Row) (*models.Admin, error) {
	a := &models.Admin{}
	var lastLogin sql.NullTime
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash,
		&a.Role, &a.Active, &a.CreatedAt, &lastLogin)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		a.LastLoginAt = &lastLogin.Time
	}
	return a, nil
}

// CreateAdmin сохраняет нового администратора.
func (s *Storage) CreateAdmin(ctx context.Context, a models.Admin) (*models.Admin, error) {
	const op = "storage.CreateAdmin"

	query := `INSERT INTO admins (username, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + adminColumns
	created, err := scanAdmin(s.DB.QueryRowContext(ctx, query,
		a.Username, a.Email, a.PasswordHash, a.Role))
	if err != nil {
		return nil, classify(op, err)
	}
	return created, nil
}

// GetAdminByEmail возвращает администратора по почте.
func (s *Storage) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const op = "storage.GetAdminByEmail"

	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`
	a, err := scanAdmin(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, classify(op, err)
	}
	return a, nil
}

// TouchAdminLastLogin фиксирует вход администратора.
func (s *Storage) TouchAdminLastLogin(ctx context.Context, id int64) error {
	const op = "storage.TouchAdminLastLogin"

	if _, err := s.DB.ExecContext(ctx,
		`UPDATE admins SET last_login_at = now() WHERE id = $1`, id); err != nil {
		return classify(op, err)
	}
	return nil
}
