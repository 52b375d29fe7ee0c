package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		status    InviteStatus
		expiresAt time.Time
		want      InviteStatus
	}{
		{"pending before deadline", InviteStatusPending, now.Add(time.Hour), InviteStatusPending},
		{"pending past deadline", InviteStatusPending, now.Add(-time.Hour), InviteStatusExpired},
		{"accepted never expires", InviteStatusAccepted, now.Add(-time.Hour), InviteStatusAccepted},
		{"declined never expires", InviteStatusDeclined, now.Add(-time.Hour), InviteStatusDeclined},
		{"already expired", InviteStatusExpired, now.Add(time.Hour), InviteStatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invite := &ReviewInvite{
				Status:    tt.status,
				ExpiresAt: tt.expiresAt,
			}
			require.Equal(t, tt.want, invite.EffectiveStatus(now))
		})
	}
}

func TestEffectiveStatus_ExactDeadlineStillPending(t *testing.T) {
	now := time.Now()
	invite := &ReviewInvite{
		Status:    InviteStatusPending,
		ExpiresAt: now,
	}
	// The deadline instant itself is still redeemable
	require.Equal(t, InviteStatusPending, invite.EffectiveStatus(now))
}
