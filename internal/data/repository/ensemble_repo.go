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

type EnsembleRepository interface {
	Create(ctx context.Context, ensemble *entity.EnsembleProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.EnsembleProfile, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entity.EnsembleProfile, error)
}

type ensembleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEnsembleRepository(db database.PgxIface, log *zap.Logger) EnsembleRepository {
	return &ensembleRepository{
		db:  db,
		log: log.With(zap.String("repository", "ensemble")),
	}
}

func (r *ensembleRepository) Create(ctx context.Context, ensemble *entity.EnsembleProfile) error {
	query := `
		INSERT INTO ensemble_profiles (id, account_id, name, ensemble_type, location,
		                               member_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		ensemble.ID,
		ensemble.AccountID,
		ensemble.Name,
		ensemble.EnsembleType,
		ensemble.Location,
		ensemble.MemberCount,
		ensemble.CreatedAt,
		ensemble.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ensemble profile",
			zap.Error(err),
			zap.String("account_id", ensemble.AccountID.String()),
		)
		return fmt.Errorf("create ensemble profile for account %s: %w", ensemble.AccountID.String(), err)
	}

	return nil
}

func (r *ensembleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EnsembleProfile, error) {
	query := `
		SELECT id, account_id, name, ensemble_type, location, member_count, created_at, updated_at
		FROM ensemble_profiles
		WHERE id = $1
	`

	var ensemble entity.EnsembleProfile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ensemble.ID,
		&ensemble.AccountID,
		&ensemble.Name,
		&ensemble.EnsembleType,
		&ensemble.Location,
		&ensemble.MemberCount,
		&ensemble.CreatedAt,
		&ensemble.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ensemble profile by ID",
			zap.Error(err),
			zap.String("ensemble_id", id.String()),
		)
		return nil, fmt.Errorf("find ensemble profile by ID %s: %w", id.String(), err)
	}

	return &ensemble, nil
}

func (r *ensembleRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entity.EnsembleProfile, error) {
	query := `
		SELECT id, account_id, name, ensemble_type, location, member_count, created_at, updated_at
		FROM ensemble_profiles
		WHERE account_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		r.log.Error("Failed to find ensemble profiles by account ID",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return nil, fmt.Errorf("find ensemble profiles by account ID %s: %w", accountID.String(), err)
	}
	defer rows.Close()

	var ensembles []*entity.EnsembleProfile
	for rows.Next() {
		var ensemble entity.EnsembleProfile
		err := rows.Scan(
			&ensemble.ID,
			&ensemble.AccountID,
			&ensemble.Name,
			&ensemble.EnsembleType,
			&ensemble.Location,
			&ensemble.MemberCount,
			&ensemble.CreatedAt,
			&ensemble.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ensemble profile row", zap.Error(err))
			return nil, fmt.Errorf("scan ensemble profile row: %w", err)
		}
		ensembles = append(ensembles, &ensemble)
	}

	return ensembles, nil
}
