// Package models содержит доменную модель пользователя сервиса:
// запись в хранилище, данные от провайдера авторизации и серверную сессию.
package models

import (
	"time"

	"github.com/magabrotheeeer/flexo-toolkit/internal/subscription"
)

// User строка таблицы users.
type User struct {
	ID                         string              // Идентификатор пользователя у провайдера авторизации
	Email                      string              // Электронная почта
	TrialStartedAt             time.Time           // Начало пробного периода (первый вход)
	TrialExpiresAt             *time.Time          // Окончание пробного периода
	SubscriptionStatus         subscription.Status // Сохранённый флаг: trial, active или expired
	LemonSqueezySubscriptionID *string             // Идентификатор подписки в LemonSqueezy
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// Identity пользователь, каким его возвращает провайдер авторизации.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}
