package entity

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	BaseSimple
	AccountID uuid.UUID `db:"account_id"`
	Token     uuid.UUID `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	Revoked   bool      `db:"revoked"`
}
