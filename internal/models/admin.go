package models

import "time"

// Роли администраторов.
const (
	RoleSuperadmin = "superadmin"
	RoleManager    = "manager"
	RoleModerator  = "moderator"
)

// Admin - оператор панели управления, не пользователь бота.
type Admin struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"` // Уникален
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}
