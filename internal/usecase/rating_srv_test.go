package usecase_test

import (
	"context"
	"testing"
	"time"

	"coach-connect/internal/data/entity"
	"coach-connect/internal/data/repository"
	"coach-connect/internal/dto/request"
	"coach-connect/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func addReview(t *testing.T, repo *repository.Repository, coachID, reviewerID uuid.UUID, rating int, createdAt time.Time) {
	t.Helper()
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: createdAt,
		},
		CoachID:    coachID,
		ReviewerID: reviewerID,
		Rating:     rating,
	}
	require.NoError(t, repo.Review.Create(context.Background(), review))
}

func TestRecompute_MeanOfTwoReviewers(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewRatingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 80)
	now := time.Now()

	addReview(t, repo, coach.ID, uuid.New(), 5, now.Add(-2*time.Hour))
	addReview(t, repo, coach.ID, uuid.New(), 4, now.Add(-1*time.Hour))

	rating, total, err := svc.Recompute(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Equal(t, 4.5, rating)
	require.Equal(t, 2, total)

	stored, err := repo.Coach.FindByID(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Equal(t, 4.5, stored.Rating)
	require.Equal(t, 2, stored.TotalReviews)
}

func TestRecompute_RoundsHalfUp(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewRatingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 80)
	now := time.Now()

	// Mean 14/3 = 4.666... rounds to 4.7
	addReview(t, repo, coach.ID, uuid.New(), 5, now.Add(-3*time.Hour))
	addReview(t, repo, coach.ID, uuid.New(), 5, now.Add(-2*time.Hour))
	addReview(t, repo, coach.ID, uuid.New(), 4, now.Add(-1*time.Hour))

	rating, total, err := svc.Recompute(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Equal(t, 4.7, rating)
	require.Equal(t, 3, total)
}

func TestRecompute_MidpointRoundsUp(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewRatingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 80)
	now := time.Now()

	// Mean 7/2 = 3.5 sits exactly on a tenth and must not drift
	addReview(t, repo, coach.ID, uuid.New(), 3, now.Add(-2*time.Hour))
	addReview(t, repo, coach.ID, uuid.New(), 4, now.Add(-1*time.Hour))

	rating, _, err := svc.Recompute(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Equal(t, 3.5, rating)
}

func TestRecompute_LatestPerReviewerWins(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewRatingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 80)
	reviewer := uuid.New()
	now := time.Now()

	// The same reviewer submits twice; only the newer rating counts
	// and the count does not double.
	addReview(t, repo, coach.ID, reviewer, 2, now.Add(-2*time.Hour))
	addReview(t, repo, coach.ID, reviewer, 5, now.Add(-1*time.Hour))

	rating, total, err := svc.Recompute(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Equal(t, 5.0, rating)
	require.Equal(t, 1, total)
}

func TestRecompute_NoReviewsIsZero(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewRatingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 80)

	rating, total, err := svc.Recompute(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, rating)
	require.Equal(t, 0, total)
}

func TestSubmitReview_RequiresBookingRelationship(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewRatingService(repo, testLogger())

	coachAccount := seedAccount(repo, "coach@example.com")
	coach := seedCoach(repo, coachAccount.ID, 80)
	ensembleAccount := seedAccount(repo, "ensemble@example.com")
	ensemble := seedEnsemble(repo, ensembleAccount.ID)

	req := &request.CreateReviewRequest{
		CoachID:    coach.ID.String(),
		EnsembleID: ensemble.ID.String(),
		Rating:     5,
	}

	// No booking between the two parties yet
	_, err := svc.SubmitReview(context.Background(), ensembleAccount.ID, req)
	require.ErrorIs(t, err, usecase.ErrForbidden)

	seedBooking(repo, ensemble.ID, coach.ID, entity.BookingStatusCompleted)

	resp, err := svc.SubmitReview(context.Background(), ensembleAccount.ID, req)
	require.NoError(t, err)
	require.Equal(t, 5, resp.Rating)
	require.Equal(t, ensemble.ID.String(), resp.ReviewerID)

	// Submission recomputes the aggregate synchronously
	stored, err := repo.Coach.FindByID(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Equal(t, 5.0, stored.Rating)
	require.Equal(t, 1, stored.TotalReviews)
}

func TestSubmitReview_RejectsForeignEnsemble(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewRatingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 80)
	owner := seedAccount(repo, "owner@example.com")
	ensemble := seedEnsemble(repo, owner.ID)
	seedBooking(repo, ensemble.ID, coach.ID, entity.BookingStatusCompleted)

	intruder := seedAccount(repo, "intruder@example.com")

	req := &request.CreateReviewRequest{
		CoachID:    coach.ID.String(),
		EnsembleID: ensemble.ID.String(),
		Rating:     1,
	}

	_, err := svc.SubmitReview(context.Background(), intruder.ID, req)
	require.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestGetCoachRating_UnknownCoach(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewRatingService(repo, testLogger())

	_, err := svc.GetCoachRating(context.Background(), uuid.New())
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestListCoachReviews_DeduplicatesPerReviewer(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewRatingService(repo, testLogger())

	coach := seedCoach(repo, uuid.New(), 80)
	reviewer := uuid.New()
	now := time.Now()

	addReview(t, repo, coach.ID, reviewer, 2, now.Add(-2*time.Hour))
	addReview(t, repo, coach.ID, reviewer, 4, now.Add(-1*time.Hour))
	addReview(t, repo, coach.ID, uuid.New(), 5, now.Add(-30*time.Minute))

	reviews, err := svc.ListCoachReviews(context.Background(), coach.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	for _, review := range reviews {
		if review.ReviewerID == reviewer.String() {
			require.Equal(t, 4, review.Rating)
		}
	}
}
