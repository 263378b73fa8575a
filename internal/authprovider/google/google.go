// Package google реализует вход через Google OAuth2 без промежуточного сервиса.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/magabrotheeeer/flexo-toolkit/internal/authprovider"
	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
)

const (
	DefaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	DefaultRevokeURL   = "https://oauth2.googleapis.com/revoke"
)

// Provider реализует authprovider.Provider для Google.
type Provider struct {
	oauth       *oauth2.Config
	userInfoURL string
	revokeURL   string
	httpClient  *http.Client
}

var _ authprovider.Provider = (*Provider)(nil)

// Option изменяет настройки провайдера.
type Option func(*Provider)

// WithEndpoints подменяет адреса Google, используется в тестах.
func WithEndpoints(endpoint oauth2.Endpoint, userInfoURL, revokeURL string) Option {
	return func(p *Provider) {
		p.oauth.Endpoint = endpoint
		p.userInfoURL = userInfoURL
		p.revokeURL = revokeURL
	}
}

// New создаёт провайдер Google.
func New(clientID, clientSecret, redirectURL string, timeout time.Duration, opts ...Option) *Provider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	p := &Provider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
		},
		userInfoURL: DefaultUserInfoURL,
		revokeURL:   DefaultRevokeURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) RedirectURL(_ context.Context) (string, error) {
	return p.oauth.AuthCodeURL(uuid.NewString(), oauth2.AccessTypeOffline), nil
}

func (p *Provider) Exchange(ctx context.Context, code string) (string, error) {
	const op = "google.Exchange"
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil && re.Response.StatusCode < http.StatusInternalServerError {
			return "", fmt.Errorf("%s: %w", op, authprovider.ErrInvalidCode)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token.AccessToken, nil
}

type userInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (p *Provider) Identity(ctx context.Context, token string) (models.Identity, error) {
	const op = "google.Identity"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return models.Identity{}, fmt.Errorf("%s: %w", op, authprovider.ErrInvalidToken)
	}
	if resp.StatusCode != http.StatusOK {
		return models.Identity{}, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	if info.Sub == "" {
		return models.Identity{}, fmt.Errorf("%s: %w", op, authprovider.ErrInvalidToken)
	}
	return models.Identity{ID: info.Sub, Email: info.Email, Name: info.Name, Picture: info.Picture}, nil
}

// DeleteSession отзывает токен доступа.
func (p *Provider) DeleteSession(ctx context.Context, token string) error {
	const op = "google.DeleteSession"
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}
	return nil
}
