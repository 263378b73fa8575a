package models

import "time"

// SubscriptionEvent событие платёжного провайдера, влияющее на статус подписки.
type SubscriptionEvent struct {
	Name           string // subscription_created, subscription_updated, ...
	UserID         string // user_id из custom data чекаута
	SubscriptionID string
	ProviderStatus string // статус подписки у провайдера: active, cancelled, expired, ...
}

// UserProvisioned публикуется при создании нового пользователя.
type UserProvisioned struct {
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	TrialExpiresAt time.Time `json:"trial_expires_at"`
}

// SubscriptionChanged публикуется после применения события провайдера.
type SubscriptionChanged struct {
	UserID         string    `json:"user_id"`
	SubscriptionID string    `json:"subscription_id"`
	Status         string    `json:"status"`
	Event          string    `json:"event"`
	ChangedAt      time.Time `json:"changed_at"`
}
