package usecase

import (
	"context"
	"fmt"

	"coach-connect/internal/data/entity"
	"coach-connect/internal/data/repository"
	"coach-connect/internal/dto/request"
	"coach-connect/internal/dto/response"
	"coach-connect/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionReviewService handles the coach-side half of the reputation
// loop: every completed booking leaves the coach a pending obligation
// to rate the ensemble, fulfilled exactly once.
type SessionReviewService interface {
	ListPending(ctx context.Context, accountID uuid.UUID) ([]response.SessionReviewResponse, error)
	Submit(ctx context.Context, accountID, reviewID uuid.UUID, req *request.SubmitSessionReviewRequest) (*response.SessionReviewResponse, error)
}

type sessionReviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSessionReviewService(repo *repository.Repository, log *zap.Logger) SessionReviewService {
	return &sessionReviewService{
		repo: repo,
		log:  log.With(zap.String("service", "session_review")),
	}
}

func (s *sessionReviewService) ListPending(ctx context.Context, accountID uuid.UUID) ([]response.SessionReviewResponse, error) {
	coach, err := s.repo.Coach.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("resolve coach profile: %w", ErrUnavailable)
	}
	if coach == nil {
		return nil, fmt.Errorf("caller has no coach profile: %w", ErrForbidden)
	}

	pending, err := s.repo.EnsembleReview.FindPendingByCoachID(ctx, coach.ID)
	if err != nil {
		return nil, fmt.Errorf("find pending session reviews: %w", ErrUnavailable)
	}

	responses := make([]response.SessionReviewResponse, len(pending))
	for i, review := range pending {
		ensemble, err := s.repo.Ensemble.FindByID(ctx, review.EnsembleID)
		if err != nil {
			s.log.Warn("Failed to load ensemble for session review",
				zap.Error(err),
				zap.String("ensemble_id", review.EnsembleID.String()),
			)
			ensemble = nil
		}
		responses[i] = response.SessionReviewToResponse(review, ensemble)
	}
	return responses, nil
}

func (s *sessionReviewService) Submit(ctx context.Context, accountID, reviewID uuid.UUID, req *request.SubmitSessionReviewRequest) (*response.SessionReviewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit session review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	coach, err := s.repo.Coach.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("resolve coach profile: %w", ErrUnavailable)
	}
	if coach == nil {
		return nil, fmt.Errorf("caller has no coach profile: %w", ErrForbidden)
	}

	review, err := s.repo.EnsembleReview.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("find session review %s: %w", reviewID.String(), ErrUnavailable)
	}
	if review == nil {
		return nil, fmt.Errorf("session review %s: %w", reviewID.String(), ErrNotFound)
	}
	if review.CoachID != coach.ID {
		return nil, fmt.Errorf("session review %s belongs to another coach: %w", reviewID.String(), ErrForbidden)
	}

	ok, err := s.repo.EnsembleReview.CompleteIf(ctx, reviewID, req.Rating, req.Feedback)
	if err != nil {
		return nil, fmt.Errorf("complete session review %s: %w", reviewID.String(), ErrUnavailable)
	}
	if !ok {
		return nil, fmt.Errorf("session review already completed: %w", ErrInvalidState)
	}

	review.Rating = &req.Rating
	review.Feedback = req.Feedback
	review.Status = entity.EnsembleReviewStatusCompleted

	s.log.Info("Session review submitted",
		zap.String("review_id", reviewID.String()),
		zap.String("coach_id", coach.ID.String()),
		zap.Int("rating", req.Rating),
	)

	ensemble, err := s.repo.Ensemble.FindByID(ctx, review.EnsembleID)
	if err != nil {
		ensemble = nil
	}

	resp := response.SessionReviewToResponse(review, ensemble)
	return &resp, nil
}
