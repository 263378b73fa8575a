// Package redirecturl реализует HTTP обработчик, отдающий ссылку на страницу входа Google.
package redirecturl

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
)

// Service возвращает ссылку провайдера авторизации.
type Service interface {
	RedirectURL(ctx context.Context) (string, error)
}

// Response ответ обработчика.
type Response struct {
	RedirectURL string `json:"redirectUrl" example:"https://accounts.google.com/o/oauth2/auth?..."`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Ссылка для входа через Google
// @Tags Auth
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} response.ErrorResponse
// @Router /oauth/google/redirect_url [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.redirecturl"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	url, err := h.service.RedirectURL(r.Context())
	if err != nil {
		log.Error("failed to get redirect url", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get redirect url"))
		return
	}

	render.JSON(w, r, Response{RedirectURL: url})
}
