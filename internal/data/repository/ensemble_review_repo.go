package repository

import (
	"context"
	"fmt"

	"coach-connect/internal/data/entity"
	"coach-connect/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EnsembleReviewRepository interface {
	Create(ctx context.Context, review *entity.EnsembleReview) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.EnsembleReview, error)
	FindPendingByCoachID(ctx context.Context, coachID uuid.UUID) ([]*entity.EnsembleReview, error)

	// CompleteIf stores the coach's feedback and moves the obligation
	// pending -> completed only if it is still pending. Returns false
	// when the guard did not match.
	CompleteIf(ctx context.Context, id uuid.UUID, rating int, feedback *string) (bool, error)
}

type ensembleReviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEnsembleReviewRepository(db database.PgxIface, log *zap.Logger) EnsembleReviewRepository {
	return &ensembleReviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "ensemble_review")),
	}
}

func (r *ensembleReviewRepository) Create(ctx context.Context, review *entity.EnsembleReview) error {
	query := `
		INSERT INTO ensemble_reviews (id, coach_id, ensemble_id, booking_id, session_month,
		                              session_year, session_format, rating, feedback, status,
		                              created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.CoachID,
		review.EnsembleID,
		review.BookingID,
		review.SessionMonth,
		review.SessionYear,
		review.SessionFormat,
		review.Rating,
		review.Feedback,
		review.Status,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ensemble review obligation",
			zap.Error(err),
			zap.String("coach_id", review.CoachID.String()),
			zap.String("booking_id", review.BookingID.String()),
		)
		return fmt.Errorf("create ensemble review for booking %s: %w", review.BookingID.String(), err)
	}

	return nil
}

func (r *ensembleReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EnsembleReview, error) {
	query := `
		SELECT id, coach_id, ensemble_id, booking_id, session_month, session_year,
		       session_format, rating, feedback, status, created_at, updated_at
		FROM ensemble_reviews
		WHERE id = $1
	`

	var review entity.EnsembleReview
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.CoachID,
		&review.EnsembleID,
		&review.BookingID,
		&review.SessionMonth,
		&review.SessionYear,
		&review.SessionFormat,
		&review.Rating,
		&review.Feedback,
		&review.Status,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ensemble review by ID",
			zap.Error(err),
			zap.String("ensemble_review_id", id.String()),
		)
		return nil, fmt.Errorf("find ensemble review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *ensembleReviewRepository) FindPendingByCoachID(ctx context.Context, coachID uuid.UUID) ([]*entity.EnsembleReview, error) {
	query := `
		SELECT id, coach_id, ensemble_id, booking_id, session_month, session_year,
		       session_format, rating, feedback, status, created_at, updated_at
		FROM ensemble_reviews
		WHERE coach_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, coachID)
	if err != nil {
		r.log.Error("Failed to find pending ensemble reviews",
			zap.Error(err),
			zap.String("coach_id", coachID.String()),
		)
		return nil, fmt.Errorf("find pending ensemble reviews for coach %s: %w", coachID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.EnsembleReview
	for rows.Next() {
		var review entity.EnsembleReview
		err := rows.Scan(
			&review.ID,
			&review.CoachID,
			&review.EnsembleID,
			&review.BookingID,
			&review.SessionMonth,
			&review.SessionYear,
			&review.SessionFormat,
			&review.Rating,
			&review.Feedback,
			&review.Status,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ensemble review row", zap.Error(err))
			return nil, fmt.Errorf("scan ensemble review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *ensembleReviewRepository) CompleteIf(ctx context.Context, id uuid.UUID, rating int, feedback *string) (bool, error) {
	query := `
		UPDATE ensemble_reviews
		SET rating = $2, feedback = $3, status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, rating, feedback)
	if err != nil {
		r.log.Error("Failed to complete ensemble review",
			zap.Error(err),
			zap.String("ensemble_review_id", id.String()),
		)
		return false, fmt.Errorf("complete ensemble review %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
