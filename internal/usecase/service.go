package usecase

import (
	"coach-connect/internal/data/repository"
	"coach-connect/pkg/notifier"
	"coach-connect/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth          AuthService
	Profile       ProfileService
	Booking       BookingService
	Rating        RatingService
	ReviewInvite  ReviewInviteService
	SessionReview SessionReviewService
}

func NewService(repo *repository.Repository, n notifier.Notifier, config *utils.Config, log *zap.Logger) *Service {
	rating := NewRatingService(repo, log)

	return &Service{
		Auth:          NewAuthService(repo, config.Session.ExpiryHours, log),
		Profile:       NewProfileService(repo, log),
		Booking:       NewBookingService(repo, log),
		Rating:        rating,
		ReviewInvite:  NewReviewInviteService(repo, rating, n, config.Invite.TTLDays, log),
		SessionReview: NewSessionReviewService(repo, log),
	}
}
