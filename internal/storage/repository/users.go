package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/telegram-suite/identity-hub/internal/models"
)

const userColumns = `id, chat_id, username, phone, email, birthday, language,
		active, registered_at, last_login_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var username, phone, email sql.NullString
	var birthday, lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.ChatID, &username, &phone, &email,
		&birthday, &u.Language, &u.Active, &u.RegisteredAt, &lastLogin)
	if err != nil {
		return nil, err
	}
	if username.Valid {
		u.Username = &username.String
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if email.Valid {
		u.Email = &email.String
	}
	if birthday.Valid {
		u.Birthday = &birthday.Time
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

func getUserByChatID(ctx context.Context, q querier, chatID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE chat_id = $1`
	return scanUser(q.QueryRowContext(ctx, query, chatID))
}

// insertUser вставляет пользователя, не падая на гонке по chat_id:
// при конфликте строка не возвращается и вызывающий перечитывает
// уже существующую. Ошибка внутри открытой транзакции обнулила бы её.
func insertUser(ctx context.Context, q querier, user models.User) (*models.User, error) {
	query := `INSERT INTO users (chat_id, username, phone, email, birthday, language)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (chat_id) DO NOTHING
			  RETURNING ` + userColumns
	return scanUser(q.QueryRowContext(ctx, query,
		user.ChatID, user.Username, user.Phone, user.Email, user.Birthday, user.Language))
}

// GetUserByChatID возвращает пользователя по его Telegram chat_id.
func (s *Storage) GetUserByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	const op = "storage.GetUserByChatID"
	u, err := getUserByChatID(ctx, s.DB, chatID)
	if err != nil {
		return nil, classify(op, err)
	}
	return u, nil
}

// RegisterUser идемпотентно регистрирует пользователя для сервиса:
// находит или создаёт строку users по chat_id и в той же транзакции
// гарантирует связь user_services. Гонку одновременных вставок
// того же chat_id разрешает уникальный индекс: проигравший повторно
// читает уже существующую строку. Возвращает пользователя и признак,
// что строка users была создана этим вызовом.
func (s *Storage) RegisterUser(ctx context.Context, user models.User, serviceID int64) (*models.User, bool, error) {
	const op = "storage.RegisterUser"

	var result *models.User
	var created bool
	err := s.withinTx(ctx, op, func(tx *sql.Tx) error {
		u, err := getUserByChatID(ctx, tx, user.ChatID)
		switch {
		case err == nil:
			result = u
		case errors.Is(err, sql.ErrNoRows):
			result, err = insertUser(ctx, tx, user)
			if errors.Is(err, sql.ErrNoRows) {
				// Параллельная доставка того же события успела раньше.
				result, err = getUserByChatID(ctx, tx, user.ChatID)
			} else {
				created = err == nil
			}
			if err != nil {
				return classify(op, err)
			}
		default:
			return classify(op, err)
		}

		link := `INSERT INTO user_services (user_id, service_id)
				 VALUES ($1, $2)
				 ON CONFLICT (user_id, service_id) DO NOTHING`
		if _, err := tx.ExecContext(ctx, link, result.ID, serviceID); err != nil {
			return classify(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

// UpdateUserByChatID применяет частичное обновление к пользователю.
// Обновляются только поля, присутствующие в патче; пустой патч
// возвращает текущее состояние без записи.
func (s *Storage) UpdateUserByChatID(ctx context.Context, chatID int64, patch models.UserPatch) (*models.User, error) {
	const op = "storage.UpdateUserByChatID"

	var result *models.User
	err := s.withinTx(ctx, op, func(tx *sql.Tx) error {
		current, err := getUserByChatID(ctx, tx, chatID)
		if err != nil {
			return classify(op, err)
		}
		if patch.IsEmpty() {
			result = current
			return nil
		}

		// nil-указатель присутствующего поля уходит в драйвер как NULL
		// и очищает колонку.
		var cols []string
		var args []any
		add := func(col string, v any) {
			cols = append(cols, col)
			args = append(args, v)
		}
		if patch.Username.Set {
			add("username", patch.Username.Value)
		}
		if patch.Phone.Set {
			add("phone", patch.Phone.Value)
		}
		if patch.Email.Set {
			add("email", patch.Email.Value)
		}
		if patch.Birthday.Set {
			add("birthday", patch.Birthday.Value)
		}
		if patch.Language.Set {
			add("language", patch.Language.Value)
		}
		if patch.Active.Set {
			add("active", patch.Active.Value)
		}

		query, args := buildUpdate("users", cols, args, "id", current.ID, userColumns)
		result, err = scanUser(tx.QueryRowContext(ctx, query, args...))
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

// ListServiceLinks возвращает связи пользователя с сервисами.
func (s *Storage) ListServiceLinks(ctx context.Context, userID int64) ([]*models.UserService, error) {
	const op = "storage.ListServiceLinks"

	query := `SELECT id, user_id, service_id, registered_at, last_login_at, active
			  FROM user_services
			  WHERE user_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	var links []*models.UserService
	for rows.Next() {
		link := &models.UserService{}
		var lastLogin sql.NullTime
		if err := rows.Scan(&link.ID, &link.UserID, &link.ServiceID,
			&link.RegisteredAt, &lastLogin, &link.Active); err != nil {
			return nil, classify(op, err)
		}
		if lastLogin.Valid {
			link.LastLoginAt = &lastLogin.Time
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return links, nil
}
