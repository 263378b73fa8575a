// Package checkout реализует HTTP обработчик создания чекаута подписки в LemonSqueezy.
package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/flexo-toolkit/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
)

// PaymentProvider создаёт чекаут.
type PaymentProvider interface {
	CreateCheckout(ctx context.Context, email, userID string) (string, error)
}

// Response ссылка на оплату.
type Response struct {
	CheckoutURL string `json:"checkoutUrl" example:"https://store.lemonsqueezy.com/checkout/custom/abc"`
}

type Handler struct {
	log       *slog.Logger
	provider  PaymentProvider
	checkouts *prometheus.CounterVec
}

// New создаёт обработчик. checkouts может быть nil.
func New(log *slog.Logger, provider PaymentProvider, checkouts *prometheus.CounterVec) *Handler {
	return &Handler{log: log, provider: provider, checkouts: checkouts}
}

func (h *Handler) count(result string) {
	if h.checkouts != nil {
		h.checkouts.WithLabelValues(result).Inc()
	}
}

// ServeHTTP godoc
// @Summary Создать чекаут подписки
// @Tags Subscription
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /subscription/create-checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.checkout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("session not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("User not found"))
		return
	}

	url, err := h.provider.CreateCheckout(r.Context(), session.Email, session.UserID)
	if err != nil {
		log.Error("failed to create checkout", sl.Err(err), slog.String("user_id", session.UserID))
		h.count("error")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to create checkout"))
		return
	}

	h.count("success")
	log.Info("checkout created", slog.String("user_id", session.UserID))
	render.JSON(w, r, Response{CheckoutURL: url})
}
