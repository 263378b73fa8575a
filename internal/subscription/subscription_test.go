package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	trial := NewTrial(started)

	tests := []struct {
		name    string
		now     time.Time
		stored  Status
		expires *time.Time
		want    State
	}{
		{
			name:    "active ignores trial dates",
			now:     started.Add(100 * 24 * time.Hour),
			stored:  StatusActive,
			expires: &trial.ExpiresAt,
			want:    State{Status: StatusActive},
		},
		{
			name:    "first moment of trial",
			now:     started,
			stored:  StatusTrial,
			expires: &trial.ExpiresAt,
			want:    State{Status: StatusTrial, DaysLeft: 14},
		},
		{
			name:    "one second before expiry",
			now:     trial.ExpiresAt.Add(-time.Second),
			stored:  StatusTrial,
			expires: &trial.ExpiresAt,
			want:    State{Status: StatusTrial, DaysLeft: 1},
		},
		{
			name:    "exactly fourteen days later",
			now:     started.Add(14 * 24 * time.Hour),
			stored:  StatusTrial,
			expires: &trial.ExpiresAt,
			want:    State{Status: StatusExpired},
		},
		{
			name:    "partial day rounds up",
			now:     started.Add(36 * time.Hour),
			stored:  StatusTrial,
			expires: &trial.ExpiresAt,
			want:    State{Status: StatusTrial, DaysLeft: 13},
		},
		{
			name:    "no trial date",
			now:     started,
			stored:  StatusTrial,
			expires: nil,
			want:    State{Status: StatusExpired},
		},
		{
			name:    "expired flag within trial window still counts as trial",
			now:     started.Add(time.Hour),
			stored:  StatusExpired,
			expires: &trial.ExpiresAt,
			want:    State{Status: StatusTrial, DaysLeft: 14},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.now, tt.stored, tt.expires))
		})
	}
}

func TestNewTrial(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTrial(now)
	assert.Equal(t, now, tr.StartedAt)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), tr.ExpiresAt)
	assert.Equal(t, StatusTrial, tr.Status)
}

func TestFromProviderStatus(t *testing.T) {
	assert.Equal(t, StatusActive, FromProviderStatus("active"))
	for _, s := range []string{"on_trial", "paused", "past_due", "unpaid", "cancelled", "expired", ""} {
		assert.Equal(t, StatusExpired, FromProviderStatus(s), s)
	}
}

func TestState_HasAccess(t *testing.T) {
	assert.True(t, State{Status: StatusActive}.HasAccess())
	assert.True(t, State{Status: StatusTrial, DaysLeft: 3}.HasAccess())
	assert.False(t, State{Status: StatusExpired}.HasAccess())
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusTrial, StatusActive, StatusExpired} {
		assert.True(t, s.Valid(), s)
	}
	for _, s := range []Status{"", "paused", "Active"} {
		assert.False(t, s.Valid(), s)
	}
}
