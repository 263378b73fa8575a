// Package auth содержит логику входа через провайдера авторизации
// и управления серверными сессиями.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/flexo-toolkit/internal/authprovider"
	"github.com/magabrotheeeer/flexo-toolkit/internal/cache"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/jwt"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
)

var (
	ErrMissingCode  = errors.New("no authorization code provided")
	ErrInvalidCode  = authprovider.ErrInvalidCode
	ErrInvalidToken = authprovider.ErrInvalidToken
	ErrUnauthorized = errors.New("unauthorized")
)

// SessionStore хранилище серверных сессий.
type SessionStore interface {
	SaveSession(ctx context.Context, s *models.Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// Provisioner регистрирует пользователя при первом входе.
type Provisioner interface {
	Provision(ctx context.Context, identity models.Identity) (bool, error)
}

// Service отвечает за вход, проверку сессии и выход.
type Service struct {
	provider authprovider.Provider
	sessions SessionStore
	accounts Provisioner
	tokens   jwt.Maker
	ttl      time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// New создаёт сервис. ttl задаёт время жизни сессии и cookie.
func New(provider authprovider.Provider, sessions SessionStore, accounts Provisioner,
	tokens jwt.Maker, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		sessions: sessions,
		accounts: accounts,
		tokens:   tokens,
		ttl:      ttl,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SessionTTL время жизни сессии.
func (s *Service) SessionTTL() time.Duration {
	return s.ttl
}

// RedirectURL ссылка для перехода на страницу входа провайдера.
func (s *Service) RedirectURL(ctx context.Context) (string, error) {
	const op = "auth.RedirectURL"
	u, err := s.provider.RedirectURL(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// LoginResult результат успешного входа.
type LoginResult struct {
	Token    string
	Identity models.Identity
	Created  bool
}

// Login обменивает код на токен провайдера, регистрирует пользователя при первом входе,
// создаёт серверную сессию и возвращает подписанный токен для cookie.
func (s *Service) Login(ctx context.Context, code string) (*LoginResult, error) {
	const op = "auth.Login"
	if code == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingCode)
	}

	providerToken, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	identity, err := s.provider.Identity(ctx, providerToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.accounts.Provision(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	session := &models.Session{
		ID:            uuid.NewString(),
		UserID:        identity.ID,
		Email:         identity.Email,
		Name:          identity.Name,
		Picture:       identity.Picture,
		ProviderToken: providerToken,
		CreatedAt:     s.now(),
	}
	if err := s.sessions.SaveSession(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.tokens.GenerateToken(identity.ID, identity.Email, session.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &LoginResult{Token: token, Identity: identity, Created: created}, nil
}

// Authenticate проверяет токен из cookie и возвращает живую сессию.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	const op = "auth.Authenticate"
	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUnauthorized, err)
	}
	session, err := s.sessions.GetSession(ctx, claims.SessionID)
	if errors.Is(err, cache.ErrSessionNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if session.UserID != claims.UserID() {
		return nil, fmt.Errorf("%s: %w: session owner mismatch", op, ErrUnauthorized)
	}
	return session, nil
}

// Logout завершает сессию у провайдера и удаляет серверную сессию.
// Ошибки только логируются: выход всегда успешен для клиента.
func (s *Service) Logout(ctx context.Context, token string) {
	const op = "auth.Logout"
	log := s.log.With(slog.String("op", op))
	if token == "" {
		return
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		log.Debug("logout with invalid token", sl.Err(err))
		return
	}

	session, err := s.sessions.GetSession(ctx, claims.SessionID)
	switch {
	case err == nil:
		if err := s.provider.DeleteSession(ctx, session.ProviderToken); err != nil {
			log.Warn("failed to delete provider session", sl.Err(err))
		}
	case errors.Is(err, cache.ErrSessionNotFound):
	default:
		log.Warn("failed to load session", sl.Err(err))
	}

	if err := s.sessions.DeleteSession(ctx, claims.SessionID); err != nil {
		log.Warn("failed to delete session", sl.Err(err))
	}
}
