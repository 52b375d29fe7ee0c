package usecase_test

import (
	"context"
	"testing"
	"time"

	"coach-connect/internal/data/entity"
	"coach-connect/internal/dto/request"
	"coach-connect/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking_SnapshotsRateAndCost(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewBookingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 90)
	owner := seedAccount(repo, "owner@example.com")
	ensemble := seedEnsemble(repo, owner.ID)

	req := &request.CreateBookingRequest{
		CoachID:       coach.ID.String(),
		EnsembleID:    ensemble.ID.String(),
		ProposedDates: []string{time.Now().Add(72 * time.Hour).Format(time.RFC3339)},
		SessionType:   "clinic",
		Hours:         3,
	}

	resp, err := svc.CreateBooking(context.Background(), owner.ID, req)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusPending, resp.Status)
	require.Equal(t, 90.0, resp.Rate)
	require.Equal(t, 270.0, resp.TotalCost)
	require.Len(t, resp.ProposedDates, 1)
}

func TestCreateBooking_RejectsForeignEnsemble(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewBookingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 90)
	owner := seedAccount(repo, "owner@example.com")
	ensemble := seedEnsemble(repo, owner.ID)
	intruder := seedAccount(repo, "intruder@example.com")

	req := &request.CreateBookingRequest{
		CoachID:       coach.ID.String(),
		EnsembleID:    ensemble.ID.String(),
		ProposedDates: []string{time.Now().Add(72 * time.Hour).Format(time.RFC3339)},
		SessionType:   "clinic",
		Hours:         2,
	}

	_, err := svc.CreateBooking(context.Background(), intruder.ID, req)
	require.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestAcceptBooking_PendingToAccepted(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewBookingService(repo, testLogger())

	coachAccount := seedAccount(repo, "coach@example.com")
	coach := seedCoach(repo, coachAccount.ID, 90)
	ensemble := seedEnsemble(repo, seedAccount(repo, "owner@example.com").ID)
	booking := seedBooking(repo, ensemble.ID, coach.ID, entity.BookingStatusPending)

	confirmed := time.Now().Add(96 * time.Hour).Format(time.RFC3339)
	resp, err := svc.AcceptBooking(context.Background(), coachAccount.ID, booking.ID,
		&request.AcceptBookingRequest{ConfirmedDate: &confirmed})
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusAccepted, resp.Status)
	require.NotNil(t, resp.ConfirmedDate)

	stored, err := repo.Booking.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusAccepted, stored.Status)
}

func TestAcceptBooking_OnlyAddressedCoach(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewBookingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 90)
	ensemble := seedEnsemble(repo, seedAccount(repo, "owner@example.com").ID)
	booking := seedBooking(repo, ensemble.ID, coach.ID, entity.BookingStatusPending)

	otherAccount := seedAccount(repo, "other-coach@example.com")
	seedCoach(repo, otherAccount.ID, 70)

	_, err := svc.AcceptBooking(context.Background(), otherAccount.ID, booking.ID, nil)
	require.ErrorIs(t, err, usecase.ErrForbidden)

	// A rejected transition must not touch the stored status
	stored, err := repo.Booking.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusPending, stored.Status)
}

func TestDeclineBooking_IsTerminal(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewBookingService(repo, testLogger())

	coachAccount := seedAccount(repo, "coach@example.com")
	coach := seedCoach(repo, coachAccount.ID, 90)
	ensemble := seedEnsemble(repo, seedAccount(repo, "owner@example.com").ID)
	booking := seedBooking(repo, ensemble.ID, coach.ID, entity.BookingStatusPending)

	resp, err := svc.DeclineBooking(context.Background(), coachAccount.ID, booking.ID)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusDeclined, resp.Status)

	// No transition leaves declined
	_, err = svc.AcceptBooking(context.Background(), coachAccount.ID, booking.ID, nil)
	require.ErrorIs(t, err, usecase.ErrInvalidState)

	_, err = svc.CompleteBooking(context.Background(), coachAccount.ID, booking.ID)
	require.ErrorIs(t, err, usecase.ErrInvalidState)
}

func TestCompleteBooking_RequiresAccepted(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewBookingService(repo, testLogger())

	coachAccount := seedAccount(repo, "coach@example.com")
	coach := seedCoach(repo, coachAccount.ID, 90)
	ensemble := seedEnsemble(repo, seedAccount(repo, "owner@example.com").ID)
	booking := seedBooking(repo, ensemble.ID, coach.ID, entity.BookingStatusPending)

	// Completing straight from pending skips acceptance
	_, err := svc.CompleteBooking(context.Background(), coachAccount.ID, booking.ID)
	require.ErrorIs(t, err, usecase.ErrInvalidState)

	stored, err := repo.Booking.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusPending, stored.Status)
	require.Nil(t, stored.CompletedAt)
}

func TestCompleteBooking_SetsCompletedAtAndObligation(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewBookingService(repo, testLogger())

	coachAccount := seedAccount(repo, "coach@example.com")
	coach := seedCoach(repo, coachAccount.ID, 90)
	ensemble := seedEnsemble(repo, seedAccount(repo, "owner@example.com").ID)
	booking := seedBooking(repo, ensemble.ID, coach.ID, entity.BookingStatusAccepted)

	confirmed := time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Booking.SetConfirmedDate(context.Background(), booking.ID, confirmed))

	resp, err := svc.CompleteBooking(context.Background(), coachAccount.ID, booking.ID)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusCompleted, resp.Status)
	require.NotNil(t, resp.CompletedAt)

	// Completion leaves the coach a pending session review keyed to
	// the confirmed session date.
	pending, err := repo.EnsembleReview.FindPendingByCoachID(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, booking.ID, pending[0].BookingID)
	require.Equal(t, ensemble.ID, pending[0].EnsembleID)
	require.Equal(t, int(time.March), pending[0].SessionMonth)
	require.Equal(t, 2026, pending[0].SessionYear)
	require.Equal(t, "clinic", pending[0].SessionFormat)
}

func TestCompleteBooking_DoubleCompleteLosesRace(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewBookingService(repo, testLogger())

	coachAccount := seedAccount(repo, "coach@example.com")
	coach := seedCoach(repo, coachAccount.ID, 90)
	ensemble := seedEnsemble(repo, seedAccount(repo, "owner@example.com").ID)
	booking := seedBooking(repo, ensemble.ID, coach.ID, entity.BookingStatusAccepted)

	_, err := svc.CompleteBooking(context.Background(), coachAccount.ID, booking.ID)
	require.NoError(t, err)

	_, err = svc.CompleteBooking(context.Background(), coachAccount.ID, booking.ID)
	require.ErrorIs(t, err, usecase.ErrInvalidState)

	// Only one obligation despite the second attempt
	pending, err := repo.EnsembleReview.FindPendingByCoachID(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestGetBooking_VisibleToBothParties(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewBookingService(repo, testLogger())

	coachAccount := seedAccount(repo, "coach@example.com")
	coach := seedCoach(repo, coachAccount.ID, 90)
	owner := seedAccount(repo, "owner@example.com")
	ensemble := seedEnsemble(repo, owner.ID)
	booking := seedBooking(repo, ensemble.ID, coach.ID, entity.BookingStatusPending)

	_, err := svc.GetBooking(context.Background(), coachAccount.ID, booking.ID)
	require.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), owner.ID, booking.ID)
	require.NoError(t, err)

	stranger := seedAccount(repo, "stranger@example.com")
	_, err = svc.GetBooking(context.Background(), stranger.ID, booking.ID)
	require.ErrorIs(t, err, usecase.ErrForbidden)
}
