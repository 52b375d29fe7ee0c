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

type CoachRepository interface {
	Create(ctx context.Context, coach *entity.CoachProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CoachProfile, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.CoachProfile, error)
	Update(ctx context.Context, coach *entity.CoachProfile) error

	// UpdateRating persists the recomputed aggregate. No other code
	// path writes rating or total_reviews.
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, totalReviews int) error

	// DeleteCascade removes a coach profile together with its
	// bookings, reviews, invites and session-review obligations in
	// one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type coachRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCoachRepository(db database.PgxIface, log *zap.Logger) CoachRepository {
	return &coachRepository{
		db:  db,
		log: log.With(zap.String("repository", "coach")),
	}
}

func (r *coachRepository) Create(ctx context.Context, coach *entity.CoachProfile) error {
	query := `
		INSERT INTO coach_profiles (id, account_id, name, location, bio, hourly_rate,
		                            rating, total_reviews, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		coach.ID,
		coach.AccountID,
		coach.Name,
		coach.Location,
		coach.Bio,
		coach.HourlyRate,
		coach.Rating,
		coach.TotalReviews,
		coach.CreatedAt,
		coach.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create coach profile",
			zap.Error(err),
			zap.String("account_id", coach.AccountID.String()),
		)
		return fmt.Errorf("create coach profile for account %s: %w", coach.AccountID.String(), err)
	}

	return nil
}

func (r *coachRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CoachProfile, error) {
	query := `
		SELECT id, account_id, name, location, bio, hourly_rate,
		       rating, total_reviews, created_at, updated_at
		FROM coach_profiles
		WHERE id = $1
	`

	var coach entity.CoachProfile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&coach.ID,
		&coach.AccountID,
		&coach.Name,
		&coach.Location,
		&coach.Bio,
		&coach.HourlyRate,
		&coach.Rating,
		&coach.TotalReviews,
		&coach.CreatedAt,
		&coach.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coach profile by ID",
			zap.Error(err),
			zap.String("coach_id", id.String()),
		)
		return nil, fmt.Errorf("find coach profile by ID %s: %w", id.String(), err)
	}

	return &coach, nil
}

func (r *coachRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.CoachProfile, error) {
	query := `
		SELECT id, account_id, name, location, bio, hourly_rate,
		       rating, total_reviews, created_at, updated_at
		FROM coach_profiles
		WHERE account_id = $1
	`

	var coach entity.CoachProfile
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&coach.ID,
		&coach.AccountID,
		&coach.Name,
		&coach.Location,
		&coach.Bio,
		&coach.HourlyRate,
		&coach.Rating,
		&coach.TotalReviews,
		&coach.CreatedAt,
		&coach.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coach profile by account ID",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return nil, fmt.Errorf("find coach profile by account ID %s: %w", accountID.String(), err)
	}

	return &coach, nil
}

func (r *coachRepository) Update(ctx context.Context, coach *entity.CoachProfile) error {
	query := `
		UPDATE coach_profiles
		SET name = $2, location = $3, bio = $4, hourly_rate = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		coach.ID,
		coach.Name,
		coach.Location,
		coach.Bio,
		coach.HourlyRate,
		coach.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update coach profile",
			zap.Error(err),
			zap.String("coach_id", coach.ID.String()),
		)
		return fmt.Errorf("update coach profile %s: %w", coach.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("coach profile %s not found", coach.ID.String())
	}

	return nil
}

func (r *coachRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, totalReviews int) error {
	query := `
		UPDATE coach_profiles
		SET rating = $2, total_reviews = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, rating, totalReviews)
	if err != nil {
		r.log.Error("Failed to update coach rating",
			zap.Error(err),
			zap.String("coach_id", id.String()),
			zap.Float64("rating", rating),
			zap.Int("total_reviews", totalReviews),
		)
		return fmt.Errorf("update coach %s rating: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("coach profile %s not found", id.String())
	}

	return nil
}

func (r *coachRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin cascade delete", zap.Error(err))
		return fmt.Errorf("begin cascade delete for coach %s: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM ensemble_reviews WHERE coach_id = $1`,
		`DELETE FROM review_invites WHERE coach_id = $1`,
		`DELETE FROM reviews WHERE coach_id = $1`,
		`DELETE FROM bookings WHERE coach_id = $1`,
		`DELETE FROM coach_profiles WHERE id = $1`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			r.log.Error("Failed cascade delete statement",
				zap.Error(err),
				zap.String("coach_id", id.String()),
			)
			return fmt.Errorf("cascade delete coach %s: %w", id.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cascade delete for coach %s: %w", id.String(), err)
	}

	r.log.Info("Coach profile deleted with dependents", zap.String("coach_id", id.String()))
	return nil
}
