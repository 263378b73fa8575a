// Package logout реализует HTTP обработчик выхода.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/sessioncookie"
)

// Service завершает сессию.
type Service interface {
	Logout(ctx context.Context, token string)
}

type Handler struct {
	log        *slog.Logger
	service    Service
	cookieName string
}

func New(log *slog.Logger, service Service, cookieName string) *Handler {
	return &Handler{log: log, service: service, cookieName: cookieName}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Завершает сессию у провайдера и сбрасывает cookie. Всегда успешен.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if token := sessioncookie.Token(r, h.cookieName); token != "" {
		h.service.Logout(r.Context(), token)
		log.Info("session closed")
	}

	sessioncookie.Clear(w, h.cookieName)
	render.JSON(w, r, response.Success())
}
