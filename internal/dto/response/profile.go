package response

import (
	"time"

	"coach-connect/internal/data/entity"
)

type CoachProfileResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Bio          *string   `json:"bio,omitempty"`
	HourlyRate   float64   `json:"hourly_rate"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"total_reviews"`
	CreatedAt    time.Time `json:"created_at"`
}

type EnsembleProfileResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	EnsembleType string    `json:"ensemble_type"`
	Location     string    `json:"location"`
	MemberCount  int       `json:"member_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Helper converters
func CoachToResponse(coach *entity.CoachProfile) CoachProfileResponse {
	return CoachProfileResponse{
		ID:           coach.ID.String(),
		Name:         coach.Name,
		Location:     coach.Location,
		Bio:          coach.Bio,
		HourlyRate:   coach.HourlyRate,
		Rating:       coach.Rating,
		TotalReviews: coach.TotalReviews,
		CreatedAt:    coach.CreatedAt,
	}
}

func EnsembleToResponse(ensemble *entity.EnsembleProfile) EnsembleProfileResponse {
	return EnsembleProfileResponse{
		ID:           ensemble.ID.String(),
		Name:         ensemble.Name,
		EnsembleType: ensemble.EnsembleType,
		Location:     ensemble.Location,
		MemberCount:  ensemble.MemberCount,
		CreatedAt:    ensemble.CreatedAt,
	}
}
