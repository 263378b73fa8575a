// Package account содержит логику учётных записей: регистрацию при первом входе,
// чтение профиля со статусом подписки и применение событий платёжного провайдера.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
	"github.com/magabrotheeeer/flexo-toolkit/internal/paymentprovider"
	"github.com/magabrotheeeer/flexo-toolkit/internal/storage"
	"github.com/magabrotheeeer/flexo-toolkit/internal/subscription"
)

// ErrUserNotFound пользователь не зарегистрирован.
var ErrUserNotFound = storage.ErrUserNotFound

// UserRepository контракт хранилища пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (bool, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateSubscription(ctx context.Context, userID string, status subscription.Status, subscriptionID string, updatedAt time.Time) error
}

// EventPublisher публикует события аккаунтов. Может отсутствовать.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Profile пользователь вместе с вычисленным статусом подписки.
type Profile struct {
	User  *models.User
	State subscription.State
}

// Service сервис учётных записей.
type Service struct {
	users     UserRepository
	publisher EventPublisher
	log       *slog.Logger
	now       func() time.Time

	provisioned prometheus.Counter
}

// New создаёт сервис. publisher может быть nil.
func New(users UserRepository, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		users:     users,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithProvisionedCounter подключает счётчик созданных пользователей.
func (s *Service) WithProvisionedCounter(c prometheus.Counter) *Service {
	s.provisioned = c
	return s
}

// Provision создаёт пользователя с пробным периодом при первом входе.
// Повторный вход не меняет существующую запись. Возвращает true, если пользователь создан.
func (s *Service) Provision(ctx context.Context, identity models.Identity) (bool, error) {
	const op = "account.Provision"
	if identity.ID == "" {
		return false, fmt.Errorf("%s: empty user id", op)
	}

	now := s.now()
	trial := subscription.NewTrial(now)
	created, err := s.users.CreateUser(ctx, models.User{
		ID:                 identity.ID,
		Email:              identity.Email,
		TrialStartedAt:     trial.StartedAt,
		TrialExpiresAt:     &trial.ExpiresAt,
		SubscriptionStatus: trial.Status,
		CreatedAt:          now,
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !created {
		return false, nil
	}

	if s.provisioned != nil {
		s.provisioned.Inc()
	}
	s.log.Info("user provisioned", slog.String("user_id", identity.ID), slog.Time("trial_expires_at", trial.ExpiresAt))
	s.publish(ctx, rabbitmq.RoutingUserProvisioned, models.UserProvisioned{
		UserID:         identity.ID,
		Email:          identity.Email,
		TrialExpiresAt: trial.ExpiresAt,
	})
	return true, nil
}

// Profile возвращает пользователя и его текущий статус.
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	const op = "account.Profile"
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Profile{
		User:  user,
		State: subscription.Derive(s.now(), user.SubscriptionStatus, user.TrialExpiresAt),
	}, nil
}

// State возвращает только вычисленный статус подписки.
func (s *Service) State(ctx context.Context, userID string) (subscription.State, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return subscription.State{}, err
	}
	return p.State, nil
}

// ApplySubscriptionEvent применяет событие провайдера к пользователю.
// Возвращает false, если событие не относится к подпискам или в нём нет пользователя.
func (s *Service) ApplySubscriptionEvent(ctx context.Context, ev models.SubscriptionEvent) (bool, error) {
	const op = "account.ApplySubscriptionEvent"
	if ev.Name != paymentprovider.EventSubscriptionCreated && ev.Name != paymentprovider.EventSubscriptionUpdated {
		return false, nil
	}
	if ev.UserID == "" {
		return false, nil
	}

	status := subscription.FromProviderStatus(ev.ProviderStatus)
	now := s.now()
	if err := s.users.UpdateSubscription(ctx, ev.UserID, status, ev.SubscriptionID, now); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("subscription updated",
		slog.String("user_id", ev.UserID),
		slog.String("event", ev.Name),
		slog.String("status", string(status)),
	)
	s.publish(ctx, rabbitmq.RoutingSubscriptionUpdated, models.SubscriptionChanged{
		UserID:         ev.UserID,
		SubscriptionID: ev.SubscriptionID,
		Status:         string(status),
		Event:          ev.Name,
		ChangedAt:      now,
	})
	return true, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, message any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, message); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", routingKey), sl.Err(err))
	}
}

// IsNotFound сообщает, что пользователь не найден.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
