package response

import (
	"time"

	"coach-connect/internal/data/entity"
)

type SessionReviewResponse struct {
	ID            string                      `json:"id"`
	BookingID     string                      `json:"booking_id"`
	EnsembleID    string                      `json:"ensemble_id"`
	Ensemble      *EnsembleProfileResponse    `json:"ensemble,omitempty"`
	SessionMonth  int                         `json:"session_month"`
	SessionYear   int                         `json:"session_year"`
	SessionFormat string                      `json:"session_format"`
	Rating        *int                        `json:"rating,omitempty"`
	Feedback      *string                     `json:"feedback,omitempty"`
	Status        entity.EnsembleReviewStatus `json:"status"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// Helper converter
func SessionReviewToResponse(review *entity.EnsembleReview, ensemble *entity.EnsembleProfile) SessionReviewResponse {
	resp := SessionReviewResponse{
		ID:            review.ID.String(),
		BookingID:     review.BookingID.String(),
		EnsembleID:    review.EnsembleID.String(),
		SessionMonth:  review.SessionMonth,
		SessionYear:   review.SessionYear,
		SessionFormat: review.SessionFormat,
		Rating:        review.Rating,
		Feedback:      review.Feedback,
		Status:        review.Status,
		CreatedAt:     review.CreatedAt,
	}

	if ensemble != nil {
		ensembleResp := EnsembleToResponse(ensemble)
		resp.Ensemble = &ensembleResp
	}

	return resp
}
