package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is a coaching engagement request between one ensemble and
// one coach. Status only moves pending->accepted->completed or
// pending->declined; CompletedAt is set iff status is completed.
type Booking struct {
	Base
	EnsembleID    uuid.UUID     `db:"ensemble_id"`
	CoachID       uuid.UUID     `db:"coach_id"`
	Status        BookingStatus `db:"status"`
	ProposedDates []time.Time   `db:"proposed_dates"`
	ConfirmedDate *time.Time    `db:"confirmed_date"`
	SessionType   string        `db:"session_type"`
	Rate          float64       `db:"rate"`
	TotalCost     float64       `db:"total_cost"`
	CompletedAt   *time.Time    `db:"completed_at"`
}
