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

type ReviewInviteRepository interface {
	Create(ctx context.Context, invite *entity.ReviewInvite) error
	FindByToken(ctx context.Context, token uuid.UUID) (*entity.ReviewInvite, error)

	// TransitionIf moves an invite out of the expected status only if
	// it is still in it. The conditional write is what makes a token
	// single-use under concurrent redemption. Returns false when the
	// guard did not match.
	TransitionIf(ctx context.Context, id uuid.UUID, expected, next entity.InviteStatus) (bool, error)
}

type reviewInviteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewInviteRepository(db database.PgxIface, log *zap.Logger) ReviewInviteRepository {
	return &reviewInviteRepository{
		db:  db,
		log: log.With(zap.String("repository", "review_invite")),
	}
}

func (r *reviewInviteRepository) Create(ctx context.Context, invite *entity.ReviewInvite) error {
	query := `
		INSERT INTO review_invites (id, token, coach_id, ensemble_email, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		invite.ID,
		invite.Token,
		invite.CoachID,
		invite.EnsembleEmail,
		invite.Status,
		invite.ExpiresAt,
		invite.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review invite",
			zap.Error(err),
			zap.String("coach_id", invite.CoachID.String()),
			zap.String("ensemble_email", invite.EnsembleEmail),
		)
		return fmt.Errorf("create review invite for coach %s: %w", invite.CoachID.String(), err)
	}

	return nil
}

func (r *reviewInviteRepository) FindByToken(ctx context.Context, token uuid.UUID) (*entity.ReviewInvite, error) {
	query := `
		SELECT id, token, coach_id, ensemble_email, status, expires_at, created_at
		FROM review_invites
		WHERE token = $1
	`

	var invite entity.ReviewInvite
	err := r.db.QueryRow(ctx, query, token).Scan(
		&invite.ID,
		&invite.Token,
		&invite.CoachID,
		&invite.EnsembleEmail,
		&invite.Status,
		&invite.ExpiresAt,
		&invite.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review invite by token", zap.Error(err))
		return nil, fmt.Errorf("find review invite by token: %w", err)
	}

	return &invite, nil
}

func (r *reviewInviteRepository) TransitionIf(ctx context.Context, id uuid.UUID, expected, next entity.InviteStatus) (bool, error) {
	query := `
		UPDATE review_invites
		SET status = $3
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, expected, next)
	if err != nil {
		r.log.Error("Failed to transition review invite",
			zap.Error(err),
			zap.String("invite_id", id.String()),
			zap.String("expected", string(expected)),
			zap.String("next", string(next)),
		)
		return false, fmt.Errorf("transition review invite %s to %s: %w", id.String(), string(next), err)
	}

	return result.RowsAffected() > 0, nil
}
