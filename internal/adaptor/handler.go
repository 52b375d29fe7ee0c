package adaptor

import (
	"coach-connect/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Booking       *BookingHandler
	Rating        *RatingHandler
	ReviewInvite  *ReviewInviteHandler
	SessionReview *SessionReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(service.Auth, log),
		Profile:       NewProfileHandler(service.Profile, log),
		Booking:       NewBookingHandler(service.Booking, log),
		Rating:        NewRatingHandler(service.Rating, log),
		ReviewInvite:  NewReviewInviteHandler(service.ReviewInvite, log),
		SessionReview: NewSessionReviewHandler(service.SessionReview, log),
	}
}
