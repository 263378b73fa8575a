// Package usersservice клиент внешнего сервиса пользователей,
// который хранит OAuth сессии и отдаёт данные пользователя по токену сессии.
package usersservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/flexo-toolkit/internal/authprovider"
	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
)

const apiKeyHeader = "x-api-key"

// Client реализует authprovider.Provider поверх HTTP API сервиса пользователей.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ authprovider.Provider = (*Client)(nil)

// New создаёт клиент сервиса пользователей.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func isClientError(status int) bool {
	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}

func (c *Client) RedirectURL(ctx context.Context) (string, error) {
	const op = "usersservice.RedirectURL"
	var out struct {
		RedirectURL string `json:"redirect_url"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/oauth/google/redirect_url", "", nil, &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if out.RedirectURL == "" {
		return "", fmt.Errorf("%s: empty redirect url", op)
	}
	return out.RedirectURL, nil
}

func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	const op = "usersservice.Exchange"
	var out struct {
		SessionToken string `json:"session_token"`
	}
	status, err := c.do(ctx, http.MethodPost, "/sessions", "", map[string]string{"code": code}, &out)
	if isClientError(status) {
		return "", fmt.Errorf("%s: %w", op, authprovider.ErrInvalidCode)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if out.SessionToken == "" {
		return "", fmt.Errorf("%s: %w", op, authprovider.ErrInvalidCode)
	}
	return out.SessionToken, nil
}

func (c *Client) Identity(ctx context.Context, token string) (models.Identity, error) {
	const op = "usersservice.Identity"
	var out struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		GoogleUser struct {
			Name    string `json:"name"`
			Picture string `json:"picture"`
		} `json:"google_user_data"`
	}
	status, err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &out)
	if isClientError(status) {
		return models.Identity{}, fmt.Errorf("%s: %w", op, authprovider.ErrInvalidToken)
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	if out.ID == "" {
		return models.Identity{}, fmt.Errorf("%s: %w", op, authprovider.ErrInvalidToken)
	}
	return models.Identity{
		ID:      out.ID,
		Email:   out.Email,
		Name:    out.GoogleUser.Name,
		Picture: out.GoogleUser.Picture,
	}, nil
}

func (c *Client) DeleteSession(ctx context.Context, token string) error {
	const op = "usersservice.DeleteSession"
	if _, err := c.do(ctx, http.MethodDelete, "/sessions", token, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
