package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func TestPublisher_Publish(t *testing.T) {
	type payload struct {
		UserID string `json:"user_id"`
	}

	t.Run("success", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("Publish", "accounts", RoutingUserProvisioned, false, false,
			mock.MatchedBy(func(msg amqp.Publishing) bool {
				var got payload
				if err := json.Unmarshal(msg.Body, &got); err != nil {
					return false
				}
				return got.UserID == "u1" &&
					msg.ContentType == "application/json" &&
					msg.DeliveryMode == amqp.Persistent
			})).Return(nil).Once()

		p := NewPublisher(ch, "accounts")
		require.NoError(t, p.Publish(context.Background(), RoutingUserProvisioned, payload{UserID: "u1"}))
		ch.AssertExpectations(t)
	})

	t.Run("broker error", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("Publish", "accounts", RoutingSubscriptionUpdated, false, false, mock.Anything).
			Return(errors.New("channel closed")).Once()

		p := NewPublisher(ch, "accounts")
		err := p.Publish(context.Background(), RoutingSubscriptionUpdated, payload{UserID: "u1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.Publish")
	})

	t.Run("marshal error", func(t *testing.T) {
		ch := new(MockChannel)
		p := NewPublisher(ch, "accounts")

		err := p.Publish(context.Background(), RoutingUserProvisioned, struct {
			Ch chan int `json:"ch"`
		}{Ch: make(chan int)})
		require.Error(t, err)
		ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ch := new(MockChannel)
		p := NewPublisher(ch, "accounts")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := p.Publish(ctx, RoutingUserProvisioned, payload{UserID: "u1"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPublisher_Close(t *testing.T) {
	ch := new(MockChannel)
	ch.On("Close").Return(nil).Once()

	require.NoError(t, NewPublisher(ch, "accounts").Close())
	ch.AssertExpectations(t)
}
