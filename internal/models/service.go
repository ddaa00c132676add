package models

import "time"

// Service - внешняя или внутренняя система (бот, мини-апп, воркер),
// которая обращается к identity-hub от своего имени.
// Имя уникально, после создания меняются только описание и владелец.
type Service struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	OwnerID     *int64  `json:"owner_id,omitempty"` // Ссылка на администратора-владельца
}

// ServicePatch описывает частичное обновление сервиса.
// Явный null очищает описание или отвязывает владельца.
type ServicePatch struct {
	Description Optional[string]
	OwnerID     Optional[int64]
}

// APIKey - учетные данные сервиса. В поле KeyHash хранится только
// bcrypt-хеш ключа, сам ключ возвращается один раз при выпуске.
type APIKey struct {
	ID          int64     `json:"id"`
	ServiceID   int64     `json:"service_id"`
	KeyHash     string    `json:"-"` // Хеш наружу не отдается
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
