package paymentprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateCheckout(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantURL    string
		wantFailed bool
	}{
		{
			name:    "created",
			status:  http.StatusCreated,
			body:    `{"data":{"type":"checkouts","id":"c1","attributes":{"url":"https://shop.lemonsqueezy.com/checkout/c1"}}}`,
			wantURL: "https://shop.lemonsqueezy.com/checkout/c1",
		},
		{
			name:       "provider error",
			status:     http.StatusUnprocessableEntity,
			body:       `{"errors":[{"detail":"variant not found"}]}`,
			wantFailed: true,
		},
		{
			name:       "missing url",
			status:     http.StatusCreated,
			body:       `{"data":{"attributes":{}}}`,
			wantFailed: true,
		},
		{
			name:       "broken json",
			status:     http.StatusCreated,
			body:       `{"data":`,
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got checkoutRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/checkouts", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				assert.Equal(t, jsonAPIContentType, r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

				w.Header().Set("Content-Type", jsonAPIContentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL+"/v1/", "test-key", "store-1", "variant-2", time.Second)
			url, err := client.CreateCheckout(context.Background(), "a@b.c", "user-9")

			assert.Equal(t, "checkouts", got.Data.Type)
			assert.Equal(t, "a@b.c", got.Data.Attributes.CheckoutData.Email)
			assert.Equal(t, "user-9", got.Data.Attributes.CheckoutData.Custom["user_id"])
			assert.Equal(t, resourceID{Type: "stores", ID: "store-1"}, got.Data.Relationships.Store.Data)
			assert.Equal(t, resourceID{Type: "variants", ID: "variant-2"}, got.Data.Relationships.Variant.Data)

			if tt.wantFailed {
				assert.True(t, errors.Is(err, ErrCheckoutFailed), "got %v", err)
				assert.Empty(t, url)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}

func TestClient_CreateCheckout_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(srv.URL, "k", "s", "v", time.Second)
	_, err := client.CreateCheckout(context.Background(), "a@b.c", "u")
	assert.Error(t, err)
}
