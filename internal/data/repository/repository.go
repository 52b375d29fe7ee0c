package repository

import (
	"coach-connect/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Account        AccountRepository
	Session        SessionRepository
	Coach          CoachRepository
	Ensemble       EnsembleRepository
	Booking        BookingRepository
	Review         ReviewRepository
	ReviewInvite   ReviewInviteRepository
	EnsembleReview EnsembleReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Account:        NewAccountRepository(db, log),
		Session:        NewSessionRepository(db, log),
		Coach:          NewCoachRepository(db, log),
		Ensemble:       NewEnsembleRepository(db, log),
		Booking:        NewBookingRepository(db, log),
		Review:         NewReviewRepository(db, log),
		ReviewInvite:   NewReviewInviteRepository(db, log),
		EnsembleReview: NewEnsembleReviewRepository(db, log),
	}
}
