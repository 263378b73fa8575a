// Package session реализует HTTP обработчик входа: обмен OAuth кода на сессию.
//
// После успешного обмена пользователь регистрируется при первом входе,
// а в ответ выставляется HttpOnly cookie с токеном сессии.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/sessioncookie"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/services/auth"
)

// Request тело запроса.
type Request struct {
	Code string `json:"code" validate:"required"`
}

// Service выполняет вход.
type Service interface {
	Login(ctx context.Context, code string) (*auth.LoginResult, error)
	SessionTTL() time.Duration
}

type Handler struct {
	log        *slog.Logger
	service    Service
	cookieName string
	logins     *prometheus.CounterVec
	validate   *validator.Validate
}

// New создаёт обработчик. logins может быть nil.
func New(log *slog.Logger, service Service, cookieName string, logins *prometheus.CounterVec) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		cookieName: cookieName,
		logins:     logins,
		validate:   validator.New(),
	}
}

func (h *Handler) count(result string) {
	if h.logins != nil {
		h.logins.WithLabelValues(result).Inc()
	}
}

// ServeHTTP godoc
// @Summary Вход по OAuth коду
// @Description Обменивает код авторизации на сессию и выставляет cookie session_token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Код авторизации"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse "Нет кода авторизации"
// @Failure 401 {object} response.ErrorResponse "Код или токен отклонён провайдером"
// @Failure 500 {object} response.ErrorResponse
// @Router /sessions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.session"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("authorization code missing")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(auth.ErrMissingCode.Error()))
		return
	}

	res, err := h.service.Login(r.Context(), req.Code)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrMissingCode):
		h.count("bad_request")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(auth.ErrMissingCode.Error()))
		return
	case errors.Is(err, auth.ErrInvalidCode), errors.Is(err, auth.ErrInvalidToken):
		log.Info("authorization code rejected", sl.Err(err))
		h.count("rejected")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid authorization code"))
		return
	default:
		log.Error("failed to login", sl.Err(err))
		h.count("error")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create session"))
		return
	}

	h.count("success")
	log.Info("user logged in", slog.String("user_id", res.Identity.ID), slog.Bool("new_user", res.Created))
	sessioncookie.Set(w, h.cookieName, res.Token, h.service.SessionTTL())
	render.JSON(w, r, response.Success())
}
