package entity

import (
	"time"

	"github.com/google/uuid"
)

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusDeclined InviteStatus = "declined"
	InviteStatusExpired  InviteStatus = "expired"
	InviteStatusAccepted InviteStatus = "accepted"
)

// ReviewInvite is a single-use, time-boxed token letting an email
// address submit a Review for a coach without holding an account
// relationship. Exactly one terminal transition out of pending.
type ReviewInvite struct {
	BaseSimple
	Token         uuid.UUID    `db:"token"`
	CoachID       uuid.UUID    `db:"coach_id"`
	EnsembleEmail string       `db:"ensemble_email"`
	Status        InviteStatus `db:"status"`
	ExpiresAt     time.Time    `db:"expires_at"`
}

// EffectiveStatus applies lazy expiry: a pending invite past its
// deadline reads as expired even before the write-back lands. The
// persisted expired row is a best-effort cache of this result.
func (i *ReviewInvite) EffectiveStatus(now time.Time) InviteStatus {
	if i.Status == InviteStatusPending && now.After(i.ExpiresAt) {
		return InviteStatusExpired
	}
	return i.Status
}
