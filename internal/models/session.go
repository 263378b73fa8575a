package models

import "time"

// Session серверная сессия, на которую ссылается cookie.
// ProviderToken нужен, чтобы завершить сессию у провайдера при выходе.
type Session struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Picture       string    `json:"picture,omitempty"`
	ProviderToken string    `json:"provider_token"`
	CreatedAt     time.Time `json:"created_at"`
}

// Identity возвращает данные пользователя, сохранённые в сессии.
func (s *Session) Identity() Identity {
	return Identity{ID: s.UserID, Email: s.Email, Name: s.Name, Picture: s.Picture}
}
