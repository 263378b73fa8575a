// Package paymentprovider реализует клиент LemonSqueezy: создание чекаута
// подписки и разбор подписанных вебхуков.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const jsonAPIContentType = "application/vnd.api+json"

// ErrCheckoutFailed провайдер отклонил запрос или вернул ответ без ссылки.
var ErrCheckoutFailed = errors.New("failed to create checkout")

// Client клиент API LemonSqueezy.
type Client struct {
	apiURL     string
	apiKey     string
	storeID    string
	variantID  string
	httpClient *http.Client
}

// NewClient создаёт клиент. apiURL без завершающего слэша, например https://api.lemonsqueezy.com/v1.
func NewClient(apiURL, apiKey, storeID, variantID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		apiKey:     apiKey,
		storeID:    storeID,
		variantID:  variantID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type relationship struct {
	Data resourceID `json:"data"`
}

type resourceID struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type checkoutRequest struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			CheckoutData struct {
				Email  string            `json:"email"`
				Custom map[string]string `json:"custom"`
			} `json:"checkout_data"`
		} `json:"attributes"`
		Relationships struct {
			Store   relationship `json:"store"`
			Variant relationship `json:"variant"`
		} `json:"relationships"`
	} `json:"data"`
}

type checkoutResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			URL string `json:"url"`
		} `json:"attributes"`
	} `json:"data"`
}

// CreateCheckout создаёт чекаут подписки для пользователя и возвращает ссылку на оплату.
// userID передаётся в custom data и возвращается в вебхуках.
func (c *Client) CreateCheckout(ctx context.Context, email, userID string) (string, error) {
	const op = "paymentprovider.CreateCheckout"

	var body checkoutRequest
	body.Data.Type = "checkouts"
	body.Data.Attributes.CheckoutData.Email = email
	body.Data.Attributes.CheckoutData.Custom = map[string]string{"user_id": userID}
	body.Data.Relationships.Store.Data = resourceID{Type: "stores", ID: c.storeID}
	body.Data.Relationships.Variant.Data = resourceID{Type: "variants", ID: c.variantID}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/checkouts", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", jsonAPIContentType)
	req.Header.Set("Content-Type", jsonAPIContentType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%s: %w: unexpected status %s: %s", op, ErrCheckoutFailed, resp.Status, bytes.TrimSpace(msg))
	}

	var out checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, ErrCheckoutFailed, err)
	}
	if out.Data.Attributes.URL == "" {
		return "", fmt.Errorf("%s: %w: empty checkout url", op, ErrCheckoutFailed)
	}
	return out.Data.Attributes.URL, nil
}
