// Package me реализует HTTP обработчик профиля текущего пользователя.
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/flexo-toolkit/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/services/account"
	"github.com/magabrotheeeer/flexo-toolkit/internal/subscription"
)

// Service читает профиль пользователя.
type Service interface {
	Profile(ctx context.Context, userID string) (*account.Profile, error)
}

// Subscription статус подписки в ответе.
type Subscription struct {
	Status       subscription.Status `json:"status" example:"trial"`
	DaysLeft     int                 `json:"daysLeft" example:"13"`
	TrialStarted time.Time           `json:"trialStarted"`
	TrialExpires *time.Time          `json:"trialExpires"`
}

// Response профиль пользователя.
type Response struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name,omitempty"`
	Picture      string       `json:"picture,omitempty"`
	Subscription Subscription `json:"subscription"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Данные пользователя и вычисленный статус подписки.
// @Tags Users
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("session not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	profile, err := h.service.Profile(r.Context(), session.UserID)
	if errors.Is(err, account.ErrUserNotFound) {
		log.Warn("user not found", slog.String("user_id", session.UserID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("User not found"))
		return
	}
	if err != nil {
		log.Error("failed to load profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	identity := session.Identity()
	render.JSON(w, r, Response{
		ID:      identity.ID,
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
		Subscription: Subscription{
			Status:       profile.State.Status,
			DaysLeft:     profile.State.DaysLeft,
			TrialStarted: profile.User.TrialStartedAt,
			TrialExpires: profile.User.TrialExpiresAt,
		},
	})
}
