package usecase

import (
	"context"
	"fmt"
	"time"

	"coach-connect/internal/data/entity"
	"coach-connect/internal/data/repository"
	"coach-connect/internal/dto/request"
	"coach-connect/internal/dto/response"
	"coach-connect/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService owns the booking state machine:
// pending -> accepted -> completed, or pending -> declined.
// Mutations are allowed only to the coach the booking is addressed to;
// reads also to the ensemble that created it.
type BookingService interface {
	CreateBooking(ctx context.Context, accountID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, accountID, bookingID uuid.UUID) (*response.BookingResponse, error)
	AcceptBooking(ctx context.Context, accountID, bookingID uuid.UUID, req *request.AcceptBookingRequest) (*response.BookingResponse, error)
	DeclineBooking(ctx context.Context, accountID, bookingID uuid.UUID) (*response.BookingResponse, error)
	CompleteBooking(ctx context.Context, accountID, bookingID uuid.UUID) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, accountID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	coachID, err := uuid.Parse(req.CoachID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid coach ID %s", ErrValidation, req.CoachID)
	}

	ensembleID, err := uuid.Parse(req.EnsembleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ensemble ID %s", ErrValidation, req.EnsembleID)
	}

	proposedDates := make([]time.Time, len(req.ProposedDates))
	for i, dateStr := range req.ProposedDates {
		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid proposed date %s", ErrValidation, dateStr)
		}
		proposedDates[i] = date
	}

	// The booking must be created by an ensemble the caller owns
	ensemble, err := s.repo.Ensemble.FindByID(ctx, ensembleID)
	if err != nil {
		return nil, fmt.Errorf("find ensemble %s: %w", req.EnsembleID, ErrUnavailable)
	}
	if ensemble == nil {
		return nil, fmt.Errorf("ensemble %s: %w", req.EnsembleID, ErrNotFound)
	}
	if ensemble.AccountID != accountID {
		return nil, fmt.Errorf("ensemble %s is not owned by caller: %w", req.EnsembleID, ErrForbidden)
	}

	coach, err := s.repo.Coach.FindByID(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("find coach %s: %w", req.CoachID, ErrUnavailable)
	}
	if coach == nil {
		return nil, fmt.Errorf("coach %s: %w", req.CoachID, ErrNotFound)
	}

	// Snapshot the coach's rate at request time
	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		EnsembleID:    ensembleID,
		CoachID:       coachID,
		Status:        entity.BookingStatusPending,
		ProposedDates: proposedDates,
		SessionType:   req.SessionType,
		Rate:          coach.HourlyRate,
		TotalCost:     coach.HourlyRate * float64(req.Hours),
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("ensemble_id", req.EnsembleID),
			zap.String("coach_id", req.CoachID),
		)
		return nil, fmt.Errorf("create booking: %w", ErrUnavailable)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("ensemble_id", req.EnsembleID),
		zap.String("coach_id", req.CoachID),
		zap.String("session_type", req.SessionType),
		zap.Float64("total_cost", booking.TotalCost),
	)

	resp := response.BookingToResponse(booking, coach.Name, ensemble.Name)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, accountID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID.String(), ErrUnavailable)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID.String(), ErrNotFound)
	}

	// Reads are allowed to either party: the coach the booking is
	// addressed to, or the account owning the requesting ensemble.
	allowed := false

	coach, err := s.repo.Coach.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("resolve coach profile: %w", ErrUnavailable)
	}
	if coach != nil && coach.ID == booking.CoachID {
		allowed = true
	}

	ensemble, err := s.repo.Ensemble.FindByID(ctx, booking.EnsembleID)
	if err != nil {
		return nil, fmt.Errorf("find ensemble %s: %w", booking.EnsembleID.String(), ErrUnavailable)
	}
	if ensemble != nil && ensemble.AccountID == accountID {
		allowed = true
	}

	if !allowed {
		return nil, fmt.Errorf("booking %s is not visible to caller: %w", bookingID.String(), ErrForbidden)
	}

	return s.buildBookingResponse(ctx, booking), nil
}

func (s *bookingService) AcceptBooking(ctx context.Context, accountID, bookingID uuid.UUID, req *request.AcceptBookingRequest) (*response.BookingResponse, error) {
	var confirmedDate *time.Time
	if req != nil && req.ConfirmedDate != nil {
		date, err := time.Parse(time.RFC3339, *req.ConfirmedDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid confirmed date %s", ErrValidation, *req.ConfirmedDate)
		}
		confirmedDate = &date
	}

	booking, err := s.transition(ctx, accountID, bookingID,
		entity.BookingStatusPending, entity.BookingStatusAccepted, nil)
	if err != nil {
		return nil, err
	}

	if confirmedDate != nil {
		if err := s.repo.Booking.SetConfirmedDate(ctx, bookingID, *confirmedDate); err != nil {
			s.log.Warn("Failed to set confirmed date",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
			)
			// Acceptance already committed; continue
		} else {
			booking.ConfirmedDate = confirmedDate
		}
	}

	s.log.Info("Booking accepted",
		zap.String("booking_id", bookingID.String()),
		zap.String("coach_id", booking.CoachID.String()),
	)

	return s.buildBookingResponse(ctx, booking), nil
}

func (s *bookingService) DeclineBooking(ctx context.Context, accountID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.transition(ctx, accountID, bookingID,
		entity.BookingStatusPending, entity.BookingStatusDeclined, nil)
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking declined",
		zap.String("booking_id", bookingID.String()),
		zap.String("coach_id", booking.CoachID.String()),
	)

	return s.buildBookingResponse(ctx, booking), nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, accountID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	now := time.Now()
	booking, err := s.transition(ctx, accountID, bookingID,
		entity.BookingStatusAccepted, entity.BookingStatusCompleted, &now)
	if err != nil {
		return nil, err
	}

	// A completed session becomes a feedback obligation for the
	// coach. Obligation creation never rolls back the completion.
	if err := s.createReviewObligation(ctx, booking); err != nil {
		s.log.Warn("Failed to create session review obligation",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
	}

	s.log.Info("Booking completed",
		zap.String("booking_id", bookingID.String()),
		zap.String("coach_id", booking.CoachID.String()),
	)

	return s.buildBookingResponse(ctx, booking), nil
}

// ==================== HELPER METHODS ====================

// transition performs an ownership-gated, conditional status change
// and returns the booking as updated.
func (s *bookingService) transition(ctx context.Context, accountID, bookingID uuid.UUID, expected, next entity.BookingStatus, completedAt *time.Time) (*entity.Booking, error) {
	coach, err := s.repo.Coach.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("resolve coach profile: %w", ErrUnavailable)
	}
	if coach == nil {
		return nil, fmt.Errorf("caller has no coach profile: %w", ErrForbidden)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID.String(), ErrUnavailable)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID.String(), ErrNotFound)
	}

	if booking.CoachID != coach.ID {
		return nil, fmt.Errorf("booking %s belongs to another coach: %w", bookingID.String(), ErrForbidden)
	}

	ok, err := s.repo.Booking.UpdateStatusIf(ctx, bookingID, expected, next, completedAt)
	if err != nil {
		return nil, fmt.Errorf("update booking %s status: %w", bookingID.String(), ErrUnavailable)
	}
	if !ok {
		// The guard did not match: either the status read above is
		// already stale, or it never matched. Report the live state.
		return nil, fmt.Errorf("booking is %s, cannot move to %s: %w",
			booking.Status, next, ErrInvalidState)
	}

	booking.Status = next
	booking.CompletedAt = completedAt
	return booking, nil
}

func (s *bookingService) createReviewObligation(ctx context.Context, booking *entity.Booking) error {
	sessionDate := booking.CompletedAt
	if booking.ConfirmedDate != nil {
		sessionDate = booking.ConfirmedDate
	}
	if sessionDate == nil {
		now := time.Now()
		sessionDate = &now
	}

	now := time.Now()
	obligation := &entity.EnsembleReview{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CoachID:       booking.CoachID,
		EnsembleID:    booking.EnsembleID,
		BookingID:     booking.ID,
		SessionMonth:  int(sessionDate.Month()),
		SessionYear:   sessionDate.Year(),
		SessionFormat: booking.SessionType,
		Status:        entity.EnsembleReviewStatusPending,
	}

	return s.repo.EnsembleReview.Create(ctx, obligation)
}

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking) *response.BookingResponse {
	var coachName, ensembleName string

	coach, _ := s.repo.Coach.FindByID(ctx, booking.CoachID)
	if coach != nil {
		coachName = coach.Name
	}

	ensemble, _ := s.repo.Ensemble.FindByID(ctx, booking.EnsembleID)
	if ensemble != nil {
		ensembleName = ensemble.Name
	}

	resp := response.BookingToResponse(booking, coachName, ensembleName)
	return &resp
}
