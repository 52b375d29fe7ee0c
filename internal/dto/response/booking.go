package response

import (
	"time"

	"coach-connect/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	EnsembleID    string               `json:"ensemble_id"`
	CoachID       string               `json:"coach_id"`
	CoachName     string               `json:"coach_name,omitempty"`
	EnsembleName  string               `json:"ensemble_name,omitempty"`
	Status        entity.BookingStatus `json:"status"`
	ProposedDates []time.Time          `json:"proposed_dates"`
	ConfirmedDate *time.Time           `json:"confirmed_date,omitempty"`
	SessionType   string               `json:"session_type"`
	Rate          float64              `json:"rate"`
	TotalCost     float64              `json:"total_cost"`
	CompletedAt   *time.Time           `json:"completed_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// Helper converter
func BookingToResponse(booking *entity.Booking, coachName, ensembleName string) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		EnsembleID:    booking.EnsembleID.String(),
		CoachID:       booking.CoachID.String(),
		CoachName:     coachName,
		EnsembleName:  ensembleName,
		Status:        booking.Status,
		ProposedDates: booking.ProposedDates,
		ConfirmedDate: booking.ConfirmedDate,
		SessionType:   booking.SessionType,
		Rate:          booking.Rate,
		TotalCost:     booking.TotalCost,
		CompletedAt:   booking.CompletedAt,
		CreatedAt:     booking.CreatedAt,
	}
}
