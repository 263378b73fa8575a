// Package middlewarectx содержит HTTP middleware сервиса: проверку сессии по cookie,
// проверку статуса подписки, ограничение частоты запросов и сбор метрик.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
	"github.com/magabrotheeeer/flexo-toolkit/internal/services/auth"
)

// Key тип для ключей контекста HTTP запроса.
type Key string

// SessionKey ключ сессии пользователя в контексте.
const SessionKey Key = "session"

// Authenticator проверяет токен сессии.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

// WithSession кладёт сессию в контекст.
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFromContext достаёт сессию, положенную SessionMiddleware.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*models.Session)
	return s, ok && s != nil
}

// SessionMiddleware пропускает запрос только с действующей сессией в cookie cookieName.
func SessionMiddleware(log *slog.Logger, authenticator Authenticator, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				log.Debug("session cookie missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			session, err := authenticator.Authenticate(r.Context(), cookie.Value)
			if errors.Is(err, auth.ErrUnauthorized) {
				log.Info("invalid or expired session", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			if err != nil {
				log.Error("failed to authenticate session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}
