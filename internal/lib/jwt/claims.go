package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims описывает данные администратора, хранящиеся в JWT.
type Claims struct {
	Email                string `json:"email"` // Почта администратора
	Role                 string `json:"role"`  // Роль: superadmin, manager, moderator
	jwt.RegisteredClaims        // Стандартные claims (ExpiresAt, IssuedAt и пр.)
}
