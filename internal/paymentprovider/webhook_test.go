package paymentprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subscriptionCreated = `{
  "meta": {"event_name": "subscription_created", "custom_data": {"user_id": "meta-user"}},
  "data": {
    "type": "subscriptions",
    "id": "sub_42",
    "attributes": {
      "status": "active",
      "user_email": "a@b.c",
      "checkout_data": {"custom": {"user_id": "user-1"}}
    }
  }
}`

func TestParseWebhook(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantName   string
		wantUser   string
		wantSub    string
		wantStatus string
		wantErr    bool
	}{
		{
			name:       "checkout custom data",
			body:       subscriptionCreated,
			wantName:   EventSubscriptionCreated,
			wantUser:   "user-1",
			wantSub:    "sub_42",
			wantStatus: "active",
		},
		{
			name:       "meta custom data fallback",
			body:       `{"meta":{"event_name":"subscription_updated","custom_data":{"user_id":"u2"}},"data":{"id":"s2","attributes":{"status":"cancelled"}}}`,
			wantName:   EventSubscriptionUpdated,
			wantUser:   "u2",
			wantSub:    "s2",
			wantStatus: "cancelled",
		},
		{
			name:       "numeric custom field and empty checkout custom",
			body:       `{"meta":{"event_name":"subscription_updated","custom_data":{"user_id":"u1","seats":3}},"data":{"id":"42","attributes":{"status":"active","checkout_data":{"custom":[]}}}}`,
			wantName:   EventSubscriptionUpdated,
			wantUser:   "u1",
			wantSub:    "42",
			wantStatus: "active",
		},
		{
			name:       "non-string user id ignored",
			body:       `{"meta":{"event_name":"subscription_created","custom_data":{"user_id":7}},"data":{"id":"43","attributes":{"status":"active","checkout_data":{"custom":null}}}}`,
			wantName:   EventSubscriptionCreated,
			wantSub:    "43",
			wantStatus: "active",
		},
		{
			name:     "no user",
			body:     `{"meta":{"event_name":"order_created"},"data":{"id":"o1"}}`,
			wantName: "order_created",
			wantSub:  "o1",
		},
		{
			name:    "invalid json",
			body:    `{"meta":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseWebhook([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, ev.Name)
			assert.Equal(t, tt.wantUser, ev.UserID)
			assert.Equal(t, tt.wantSub, ev.SubscriptionID)
			assert.Equal(t, tt.wantStatus, ev.ProviderStatus)
		})
	}
}

func TestVerifySignature(t *testing.T) {
	body := []byte(subscriptionCreated)
	secret := "whsec"
	valid := Sign(secret, body)

	assert.NoError(t, VerifySignature(secret, body, valid))
	assert.ErrorIs(t, VerifySignature(secret, body, ""), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature(secret, body, "not-hex"), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature("other", body, valid), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature(secret, append(body, ' '), valid), ErrInvalidSignature)
}
