package response

import (
	"time"

	"coach-connect/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	CoachID    string    `json:"coach_id"`
	ReviewerID string    `json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CoachRatingResponse struct {
	CoachID      string  `json:"coach_id"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
}

type InviteResponse struct {
	Token         string              `json:"token"`
	CoachID       string              `json:"coach_id"`
	CoachName     string              `json:"coach_name,omitempty"`
	EnsembleEmail string              `json:"ensemble_email"`
	Status        entity.InviteStatus `json:"status"`
	ExpiresAt     time.Time           `json:"expires_at"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Helper converters
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID.String(),
		CoachID:    review.CoachID.String(),
		ReviewerID: review.ReviewerID.String(),
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

func InviteToResponse(invite *entity.ReviewInvite, coachName string) InviteResponse {
	return InviteResponse{
		Token:         invite.Token.String(),
		CoachID:       invite.CoachID.String(),
		CoachName:     coachName,
		EnsembleEmail: invite.EnsembleEmail,
		Status:        invite.Status,
		ExpiresAt:     invite.ExpiresAt,
		CreatedAt:     invite.CreatedAt,
	}
}
