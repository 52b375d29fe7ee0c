package repository

import (
	"context"
	"fmt"
	"time"

	"coach-connect/internal/data/entity"
	"coach-connect/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCoachID(ctx context.Context, coachID uuid.UUID) ([]*entity.Booking, error)
	FindByEnsembleID(ctx context.Context, ensembleID uuid.UUID) ([]*entity.Booking, error)
	FindByEnsembleAndCoach(ctx context.Context, ensembleID, coachID uuid.UUID) ([]*entity.Booking, error)

	// UpdateStatusIf transitions a booking only when its current
	// status matches the expected one, so concurrent transitions on
	// the same booking cannot both win. Returns false when the guard
	// did not match.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next entity.BookingStatus, completedAt *time.Time) (bool, error)

	SetConfirmedDate(ctx context.Context, id uuid.UUID, confirmedDate time.Time) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, ensemble_id, coach_id, status, proposed_dates, confirmed_date,
		       session_type, rate, total_cost, completed_at, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, ensemble_id, coach_id, status, proposed_dates, confirmed_date,
		                      session_type, rate, total_cost, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.EnsembleID,
		booking.CoachID,
		booking.Status,
		booking.ProposedDates,
		booking.ConfirmedDate,
		booking.SessionType,
		booking.Rate,
		booking.TotalCost,
		booking.CompletedAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("ensemble_id", booking.EnsembleID.String()),
			zap.String("coach_id", booking.CoachID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.EnsembleID,
		&booking.CoachID,
		&booking.Status,
		&booking.ProposedDates,
		&booking.ConfirmedDate,
		&booking.SessionType,
		&booking.Rate,
		&booking.TotalCost,
		&booking.CompletedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) findMany(ctx context.Context, query string, arg any, field string) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.Any(field, arg),
		)
		return nil, fmt.Errorf("find bookings by %s: %w", field, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindByCoachID(ctx context.Context, coachID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE coach_id = $1
		ORDER BY created_at DESC
	`
	return r.findMany(ctx, query, coachID, "coach_id")
}

func (r *bookingRepository) FindByEnsembleID(ctx context.Context, ensembleID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ensemble_id = $1
		ORDER BY created_at DESC
	`
	return r.findMany(ctx, query, ensembleID, "ensemble_id")
}

func (r *bookingRepository) FindByEnsembleAndCoach(ctx context.Context, ensembleID, coachID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ensemble_id = $1 AND coach_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, ensembleID, coachID)
	if err != nil {
		r.log.Error("Failed to find bookings by ensemble and coach",
			zap.Error(err),
			zap.String("ensemble_id", ensembleID.String()),
			zap.String("coach_id", coachID.String()),
		)
		return nil, fmt.Errorf("find bookings by ensemble %s and coach %s: %w",
			ensembleID.String(), coachID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next entity.BookingStatus, completedAt *time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $3, completed_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, expected, next, completedAt)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("expected", string(expected)),
			zap.String("next", string(next)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(next), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) SetConfirmedDate(ctx context.Context, id uuid.UUID, confirmedDate time.Time) error {
	query := `UPDATE bookings SET confirmed_date = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, confirmedDate)
	if err != nil {
		r.log.Error("Failed to set confirmed date",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("set confirmed date for booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}
