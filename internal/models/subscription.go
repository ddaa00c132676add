package models

import "time"

// Subscription описывает тариф: 'free', 'pro_month', 'pro_year' и т.п.
// Справочные данные, создаются администратором и не меняются событиями.
type Subscription struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	TermDays       int     `json:"term_days"` // 0 = бессрочно
	Price          float64 `json:"price"`
	SalePercent    int     `json:"sale_percent"`
	TrialAvailable bool    `json:"trial_available"`
}

// SubscriptionPatch описывает частичное обновление тарифа.
// Из колонок тарифа nullable только описание, его очищает явный null;
// null в остальных полях упрётся в NOT NULL и вернётся клиенту
// как ошибка данных.
type SubscriptionPatch struct {
	Name           Optional[string]
	Description    Optional[string]
	TermDays       Optional[int]
	Price          Optional[float64]
	SalePercent    Optional[int]
	TrialAvailable Optional[bool]
}

// UserSubscription - факт подписки пользователя на тариф.
// ExpiresAt == nil означает бессрочную подписку (term_days = 0).
// На пару (user_id, subscription_id) допускается не более одной
// активной записи, инвариант закреплен частичным уникальным индексом.
type UserSubscription struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	SubscriptionID int64      `json:"subscription_id"`
	StartedAt      time.Time  `json:"started_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Active         bool       `json:"active"`
	Source         *string    `json:"source,omitempty"` // 'tribute', 'telegram_stars', ...
}

// Expired сообщает, истекла ли подписка к моменту now.
// Истечение - производный факт времени чтения, строки не мутируются.
func (us UserSubscription) Expired(now time.Time) bool {
	return us.ExpiresAt != nil && us.ExpiresAt.Before(now)
}
