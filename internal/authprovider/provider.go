// Package authprovider описывает внешний провайдер авторизации,
// через который пользователь входит в сервис по OAuth.
package authprovider

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
)

var (
	// ErrInvalidCode провайдер отклонил код авторизации.
	ErrInvalidCode = errors.New("invalid authorization code")
	// ErrInvalidToken токен провайдера недействителен или отозван.
	ErrInvalidToken = errors.New("invalid provider token")
)

// Provider интерфейс провайдера авторизации.
type Provider interface {
	// RedirectURL ссылка на страницу входа провайдера.
	RedirectURL(ctx context.Context) (string, error)
	// Exchange обменивает код авторизации на токен провайдера.
	Exchange(ctx context.Context, code string) (string, error)
	// Identity возвращает пользователя по токену провайдера.
	Identity(ctx context.Context, token string) (models.Identity, error)
	// DeleteSession завершает сессию у провайдера.
	DeleteSession(ctx context.Context, token string) error
}
