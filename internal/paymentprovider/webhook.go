package paymentprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
)

// SignatureHeader заголовок с подписью тела вебхука.
const SignatureHeader = "X-Signature"

// События, меняющие статус подписки.
const (
	EventSubscriptionCreated = "subscription_created"
	EventSubscriptionUpdated = "subscription_updated"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

// WebhookPayload тело вебхука LemonSqueezy (только используемые поля).
type WebhookPayload struct {
	Meta struct {
		EventName  string          `json:"event_name"`
		CustomData json.RawMessage `json:"custom_data"`
	} `json:"meta"`
	Data struct {
		Type       string `json:"type"`
		ID         string `json:"id"`
		Attributes struct {
			Status       string `json:"status"`
			UserEmail    string `json:"user_email"`
			CheckoutData struct {
				Custom json.RawMessage `json:"custom"`
			} `json:"checkout_data"`
		} `json:"attributes"`
	} `json:"data"`
}

// UserID возвращает идентификатор пользователя из custom data чекаута,
// а если его нет, из meta.custom_data.
// Custom data может быть объектом с полями любых типов или пустым массивом.
func (p *WebhookPayload) UserID() string {
	if id := customUserID(p.Data.Attributes.CheckoutData.Custom); id != "" {
		return id
	}
	return customUserID(p.Meta.CustomData)
}

func customUserID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	id, _ := fields["user_id"].(string)
	return id
}

// ParseWebhook разбирает тело вебхука в событие подписки.
func ParseWebhook(body []byte) (models.SubscriptionEvent, error) {
	const op = "paymentprovider.ParseWebhook"
	var p WebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return models.SubscriptionEvent{}, fmt.Errorf("%s: %w: %v", op, ErrInvalidPayload, err)
	}
	return models.SubscriptionEvent{
		Name:           p.Meta.EventName,
		UserID:         p.UserID(),
		SubscriptionID: p.Data.ID,
		ProviderStatus: p.Data.Attributes.Status,
	}, nil
}

// Sign возвращает hex HMAC-SHA256 тела.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature сравнивает подпись из заголовка с HMAC тела за постоянное время.
func VerifySignature(secret string, body []byte, signature string) error {
	got, err := hex.DecodeString(signature)
	if err != nil || signature == "" {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), got) {
		return ErrInvalidSignature
	}
	return nil
}
