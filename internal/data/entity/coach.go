package entity

import (
	"github.com/google/uuid"
)

// CoachProfile is a coach's public marketplace profile. Rating and
// TotalReviews are a materialized aggregate over the coach's review
// set; only the rating recompute path writes them.
type CoachProfile struct {
	Base
	AccountID    uuid.UUID `db:"account_id"`
	Name         string    `db:"name"`
	Location     string    `db:"location"`
	Bio          *string   `db:"bio"`
	HourlyRate   float64   `db:"hourly_rate"`
	Rating       float64   `db:"rating"` // one decimal place
	TotalReviews int       `db:"total_reviews"`
}
