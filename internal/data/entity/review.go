package entity

import (
	"github.com/google/uuid"
)

// Review is an ensemble's rating of a coach. Rows are immutable;
// resubmission creates a new row and only the most recent row per
// reviewer counts toward the coach's aggregate rating.
type Review struct {
	BaseSimple
	CoachID    uuid.UUID `db:"coach_id"`
	ReviewerID uuid.UUID `db:"reviewer_id"`
	Rating     int       `db:"rating"` // 1-5
	Comment    *string   `db:"comment"`
}
