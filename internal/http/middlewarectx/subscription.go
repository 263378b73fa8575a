package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/services/account"
	"github.com/magabrotheeeer/flexo-toolkit/internal/subscription"
)

// StateGetter возвращает вычисленный статус подписки пользователя.
type StateGetter interface {
	State(ctx context.Context, userID string) (subscription.State, error)
}

// SubscriptionStatusMiddleware открывает доступ только при активной подписке или пробном периоде.
// denied может быть nil.
func SubscriptionStatusMiddleware(log *slog.Logger, states StateGetter, denied prometheus.Counter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SubscriptionStatusMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			session, ok := SessionFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			state, err := states.State(r.Context(), session.UserID)
			if account.IsNotFound(err) {
				log.Warn("user not found", slog.String("user_id", session.UserID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
				return
			}
			if err != nil {
				log.Error("failed to get subscription status", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !state.HasAccess() {
				log.Info("subscription expired, access denied", slog.String("user_id", session.UserID))
				if denied != nil {
					denied.Inc()
				}
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("subscription expired, access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
