package entity

import (
	"github.com/google/uuid"
)

type EnsembleReviewStatus string

const (
	EnsembleReviewStatusPending   EnsembleReviewStatus = "pending"
	EnsembleReviewStatusCompleted EnsembleReviewStatus = "completed"
)

// EnsembleReview is a coach's feedback obligation for a completed
// session with an ensemble, the mirror of Review. One obligation per
// completed booking; pending becomes completed once and never reverts.
type EnsembleReview struct {
	Base
	CoachID       uuid.UUID            `db:"coach_id"`
	EnsembleID    uuid.UUID            `db:"ensemble_id"`
	BookingID     uuid.UUID            `db:"booking_id"`
	SessionMonth  int                  `db:"session_month"`
	SessionYear   int                  `db:"session_year"`
	SessionFormat string               `db:"session_format"`
	Rating        *int                 `db:"rating"` // 1-5, set on completion
	Feedback      *string              `db:"feedback"`
	Status        EnsembleReviewStatus `db:"status"`
}
