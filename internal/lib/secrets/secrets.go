// Package secrets реализует выпуск и проверку секретов: API-ключей
// сервисов и паролей администраторов.
//
// Хранится только bcrypt-хеш. Соль вшита в хеш, поэтому ключ нельзя
// найти в базе прямым сравнением — проверка всегда идет через CompareHash.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// apiKeyBytes - длина случайной части API-ключа до кодирования.
const apiKeyBytes = 32

// NewAPIKey генерирует новый случайный API-ключ.
// Сырое значение возвращается вызывающему ровно один раз
// и никогда не сохраняется.
func NewAPIKey() (string, error) {
	const op = "secrets.NewAPIKey"
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GetHash принимает секрет и возвращает его bcrypt-хэш
// для безопасного хранения в базе данных.
func GetHash(secret string) (string, error) {
	const op = "secrets.GetHash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash сравнивает bcrypt-хэш с предъявленным секретом.
// Возвращает nil при совпадении, иначе — ошибку.
func CompareHash(originalHash, presented string) error {
	const op = "secrets.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(presented)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
