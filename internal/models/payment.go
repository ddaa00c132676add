package models

import (
	"encoding/json"
	"time"
)

// Payment - платежная запись. UserID может быть nil, если платеж
// не удалось привязать к пользователю.
type Payment struct {
	ID              int64           `json:"id"`
	UserID          *int64          `json:"user_id,omitempty"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Provider        string          `json:"provider"`
	ProviderPayload json.RawMessage `json:"provider_payload,omitempty"` // Сырые данные провайдера, не интерпретируются
	Succeeded       bool            `json:"succeeded"`
	CreatedAt       time.Time       `json:"created_at"`
}
