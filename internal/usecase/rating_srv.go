package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"coach-connect/internal/data/entity"
	"coach-connect/internal/data/repository"
	"coach-connect/internal/dto/request"
	"coach-connect/internal/dto/response"
	"coach-connect/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RatingService maintains the coach rating aggregate. The aggregate is
// always derived from review rows: the mean of each reviewer's latest
// review, rounded half-up to one decimal. Review rows themselves are
// immutable; a reviewer who submits again supersedes their earlier
// entry in the aggregate only.
type RatingService interface {
	SubmitReview(ctx context.Context, accountID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetCoachRating(ctx context.Context, coachID uuid.UUID) (*response.CoachRatingResponse, error)
	ListCoachReviews(ctx context.Context, coachID uuid.UUID) ([]response.ReviewResponse, error)

	// Recompute rebuilds and persists the aggregate for one coach.
	Recompute(ctx context.Context, coachID uuid.UUID) (float64, int, error)
}

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo: repo,
		log:  log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) SubmitReview(ctx context.Context, accountID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit review validation failed", zap.Any("errors", errs))
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

	// The direct path requires a prior booking relationship between
	// the two parties. Invite redemption bypasses this check.
	bookings, err := s.repo.Booking.FindByEnsembleAndCoach(ctx, ensembleID, coachID)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", ErrUnavailable)
	}
	if len(bookings) == 0 {
		return nil, fmt.Errorf("no booking between ensemble %s and coach %s: %w",
			req.EnsembleID, req.CoachID, ErrForbidden)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CoachID:    coachID,
		ReviewerID: ensembleID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("coach_id", req.CoachID),
			zap.String("reviewer_id", ensembleID.String()),
		)
		return nil, fmt.Errorf("create review: %w", ErrUnavailable)
	}

	if _, _, err := s.Recompute(ctx, coachID); err != nil {
		s.log.Warn("Rating recompute failed after review submission",
			zap.Error(err),
			zap.String("coach_id", req.CoachID),
		)
	}

	s.log.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("coach_id", req.CoachID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *ratingService) GetCoachRating(ctx context.Context, coachID uuid.UUID) (*response.CoachRatingResponse, error) {
	coach, err := s.repo.Coach.FindByID(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("find coach %s: %w", coachID.String(), ErrUnavailable)
	}
	if coach == nil {
		return nil, fmt.Errorf("coach %s: %w", coachID.String(), ErrNotFound)
	}

	return &response.CoachRatingResponse{
		CoachID:      coach.ID.String(),
		Rating:       coach.Rating,
		TotalReviews: coach.TotalReviews,
	}, nil
}

func (s *ratingService) ListCoachReviews(ctx context.Context, coachID uuid.UUID) ([]response.ReviewResponse, error) {
	coach, err := s.repo.Coach.FindByID(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("find coach %s: %w", coachID.String(), ErrUnavailable)
	}
	if coach == nil {
		return nil, fmt.Errorf("coach %s: %w", coachID.String(), ErrNotFound)
	}

	reviews, err := s.repo.Review.FindByCoachID(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", ErrUnavailable)
	}

	// Only each reviewer's latest review is shown, matching what the
	// aggregate counts.
	latest := latestPerReviewer(reviews)

	responses := make([]response.ReviewResponse, len(latest))
	for i, review := range latest {
		responses[i] = response.ReviewToResponse(review)
	}
	return responses, nil
}

func (s *ratingService) Recompute(ctx context.Context, coachID uuid.UUID) (float64, int, error) {
	reviews, err := s.repo.Review.FindByCoachID(ctx, coachID)
	if err != nil {
		return 0, 0, fmt.Errorf("find reviews for coach %s: %w", coachID.String(), err)
	}

	latest := latestPerReviewer(reviews)

	rating := 0.0
	if len(latest) > 0 {
		sum := 0
		for _, review := range latest {
			sum += review.Rating
		}
		avg := float64(sum) / float64(len(latest))
		// Round half-up to one decimal: 4.65 -> 4.7
		rating = math.Floor(avg*10+0.5) / 10
	}

	if err := s.repo.Coach.UpdateRating(ctx, coachID, rating, len(latest)); err != nil {
		return 0, 0, fmt.Errorf("persist rating for coach %s: %w", coachID.String(), err)
	}

	s.log.Info("Coach rating recomputed",
		zap.String("coach_id", coachID.String()),
		zap.Float64("rating", rating),
		zap.Int("total_reviews", len(latest)),
	)

	return rating, len(latest), nil
}

// latestPerReviewer keeps the first review seen per reviewer from a
// newest-first slice.
func latestPerReviewer(reviews []*entity.Review) []*entity.Review {
	seen := make(map[uuid.UUID]bool, len(reviews))
	latest := make([]*entity.Review, 0, len(reviews))
	for _, review := range reviews {
		if seen[review.ReviewerID] {
			continue
		}
		seen[review.ReviewerID] = true
		latest = append(latest, review)
	}
	return latest
}
