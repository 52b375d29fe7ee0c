package entity

import (
	"github.com/google/uuid"
)

// EnsembleProfile is a performing ensemble's profile. One account may
// own several ensemble profiles.
type EnsembleProfile struct {
	Base
	AccountID    uuid.UUID `db:"account_id"`
	Name         string    `db:"name"`
	EnsembleType string    `db:"ensemble_type"`
	Location     string    `db:"location"`
	MemberCount  int       `db:"member_count"`
}
