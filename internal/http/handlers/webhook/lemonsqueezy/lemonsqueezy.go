// Package lemonsqueezy принимает вебхуки LemonSqueezy об изменении подписки.
package lemonsqueezy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
	"github.com/magabrotheeeer/flexo-toolkit/internal/paymentprovider"
	"github.com/magabrotheeeer/flexo-toolkit/internal/services/account"
)

const maxBodySize = 1 << 20

// Service применяет событие подписки к пользователю.
type Service interface {
	ApplySubscriptionEvent(ctx context.Context, ev models.SubscriptionEvent) (bool, error)
}

// Response подтверждение получения.
type Response struct {
	Received bool `json:"received" example:"true"`
}

type Handler struct {
	log     *slog.Logger
	service Service
	secret  string
	events  *prometheus.CounterVec
}

// New создаёт обработчик. При пустом secret подпись не проверяется.
func New(log *slog.Logger, service Service, secret string, events *prometheus.CounterVec) *Handler {
	return &Handler{log: log, service: service, secret: secret, events: events}
}

func (h *Handler) count(event, result string) {
	if h.events != nil {
		h.events.WithLabelValues(event, result).Inc()
	}
}

// ServeHTTP godoc
// @Summary Вебхук LemonSqueezy
// @Description Обновляет статус подписки по событиям subscription_created и subscription_updated.
// @Tags Subscription
// @Accept json
// @Produce json
// @Param X-Signature header string false "HMAC-SHA256 тела в hex"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /webhooks/lemonsqueezy [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.lemonsqueezy"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Error("failed to read body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if h.secret != "" {
		if err := paymentprovider.VerifySignature(h.secret, body, r.Header.Get(paymentprovider.SignatureHeader)); err != nil {
			log.Warn("webhook signature rejected", sl.Err(err))
			h.count("unknown", "invalid_signature")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid signature"))
			return
		}
	}

	ev, err := paymentprovider.ParseWebhook(body)
	if err != nil {
		log.Error("failed to parse webhook", sl.Err(err))
		h.count("unknown", "invalid_payload")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log = log.With(slog.String("event", ev.Name), slog.String("user_id", ev.UserID))

	applied, err := h.service.ApplySubscriptionEvent(r.Context(), ev)
	switch {
	case errors.Is(err, account.ErrUserNotFound):
		log.Warn("webhook for unknown user")
		h.count(ev.Name, "unknown_user")
	case err != nil:
		log.Error("failed to apply webhook", sl.Err(err))
		h.count(ev.Name, "error")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	case applied:
		log.Info("webhook applied")
		h.count(ev.Name, "applied")
	default:
		log.Debug("webhook ignored")
		h.count(ev.Name, "ignored")
	}

	render.JSON(w, r, Response{Received: true})
}
