package repository

import (
	"context"
	"fmt"

	"coach-connect/internal/data/entity"
	"coach-connect/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error

	// FindByCoachID returns every review row for the coach, newest
	// first. The rating recompute deduplicates per reviewer; older
	// resubmissions stay in storage as an audit trail.
	FindByCoachID(ctx context.Context, coachID uuid.UUID) ([]*entity.Review, error)

	FindByReviewerID(ctx context.Context, reviewerID uuid.UUID) ([]*entity.Review, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, coach_id, reviewer_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.CoachID,
		review.ReviewerID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("coach_id", review.CoachID.String()),
			zap.String("reviewer_id", review.ReviewerID.String()),
		)
		return fmt.Errorf("create review for coach %s by reviewer %s: %w",
			review.CoachID.String(), review.ReviewerID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByCoachID(ctx context.Context, coachID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, coach_id, reviewer_id, rating, comment, created_at
		FROM reviews
		WHERE coach_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, coachID)
	if err != nil {
		r.log.Error("Failed to find reviews by coach ID",
			zap.Error(err),
			zap.String("coach_id", coachID.String()),
		)
		return nil, fmt.Errorf("find reviews by coach ID %s: %w", coachID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.CoachID,
			&review.ReviewerID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByReviewerID(ctx context.Context, reviewerID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, coach_id, reviewer_id, rating, comment, created_at
		FROM reviews
		WHERE reviewer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, reviewerID)
	if err != nil {
		r.log.Error("Failed to find reviews by reviewer ID",
			zap.Error(err),
			zap.String("reviewer_id", reviewerID.String()),
		)
		return nil, fmt.Errorf("find reviews by reviewer ID %s: %w", reviewerID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.CoachID,
			&review.ReviewerID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}
