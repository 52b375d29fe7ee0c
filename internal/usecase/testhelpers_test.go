package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"coach-connect/internal/data/entity"
	"coach-connect/internal/data/repository"
	"coach-connect/pkg/notifier"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repositories backing the service tests. Each fake guards
// its map with a mutex so the conditional-update tests can exercise
// concurrent callers, and the conditional methods hold the lock across
// the check-and-write just like the SQL guards do.

func newTestRepo() *repository.Repository {
	return &repository.Repository{
		Account:        &fakeAccountRepo{accounts: map[uuid.UUID]*entity.Account{}},
		Session:        &fakeSessionRepo{sessions: map[uuid.UUID]*entity.Session{}},
		Coach:          &fakeCoachRepo{coaches: map[uuid.UUID]*entity.CoachProfile{}},
		Ensemble:       &fakeEnsembleRepo{ensembles: map[uuid.UUID]*entity.EnsembleProfile{}},
		Booking:        &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}},
		Review:         &fakeReviewRepo{},
		ReviewInvite:   &fakeReviewInviteRepo{invites: map[uuid.UUID]*entity.ReviewInvite{}},
		EnsembleReview: &fakeEnsembleReviewRepo{reviews: map[uuid.UUID]*entity.EnsembleReview{}},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// ---------- accounts ----------

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if strings.EqualFold(account.Email, email) {
			copied := *account
			return &copied, nil
		}
	}
	return nil, nil
}

// ---------- sessions ----------

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.Token.String() == token && !session.Revoked && session.ExpiresAt.After(time.Now()) {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.Token.String() == token {
			session.Revoked = true
		}
	}
	return nil
}

// ---------- coaches ----------

type fakeCoachRepo struct {
	mu      sync.Mutex
	coaches map[uuid.UUID]*entity.CoachProfile
}

func (r *fakeCoachRepo) Create(_ context.Context, coach *entity.CoachProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *coach
	r.coaches[coach.ID] = &copied
	return nil
}

func (r *fakeCoachRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CoachProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	coach, ok := r.coaches[id]
	if !ok {
		return nil, nil
	}
	copied := *coach
	return &copied, nil
}

func (r *fakeCoachRepo) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.CoachProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, coach := range r.coaches {
		if coach.AccountID == accountID {
			copied := *coach
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCoachRepo) Update(_ context.Context, coach *entity.CoachProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *coach
	r.coaches[coach.ID] = &copied
	return nil
}

func (r *fakeCoachRepo) UpdateRating(_ context.Context, id uuid.UUID, rating float64, totalReviews int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if coach, ok := r.coaches[id]; ok {
		coach.Rating = rating
		coach.TotalReviews = totalReviews
	}
	return nil
}

func (r *fakeCoachRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.coaches, id)
	return nil
}

// ---------- ensembles ----------

type fakeEnsembleRepo struct {
	mu        sync.Mutex
	ensembles map[uuid.UUID]*entity.EnsembleProfile
}

func (r *fakeEnsembleRepo) Create(_ context.Context, ensemble *entity.EnsembleProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *ensemble
	r.ensembles[ensemble.ID] = &copied
	return nil
}

func (r *fakeEnsembleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.EnsembleProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensemble, ok := r.ensembles[id]
	if !ok {
		return nil, nil
	}
	copied := *ensemble
	return &copied, nil
}

func (r *fakeEnsembleRepo) FindByAccountID(_ context.Context, accountID uuid.UUID) ([]*entity.EnsembleProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.EnsembleProfile
	for _, ensemble := range r.ensembles {
		if ensemble.AccountID == accountID {
			copied := *ensemble
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// ---------- bookings ----------

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindByCoachID(_ context.Context, coachID uuid.UUID) ([]*entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return b.CoachID == coachID }), nil
}

func (r *fakeBookingRepo) FindByEnsembleID(_ context.Context, ensembleID uuid.UUID) ([]*entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return b.EnsembleID == ensembleID }), nil
}

func (r *fakeBookingRepo) FindByEnsembleAndCoach(_ context.Context, ensembleID, coachID uuid.UUID) ([]*entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool {
		return b.EnsembleID == ensembleID && b.CoachID == coachID
	}), nil
}

func (r *fakeBookingRepo) filter(keep func(*entity.Booking) bool) []*entity.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Booking
	for _, booking := range r.bookings {
		if keep(booking) {
			copied := *booking
			result = append(result, &copied)
		}
	}
	return result
}

func (r *fakeBookingRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, expected, next entity.BookingStatus, completedAt *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != expected {
		return false, nil
	}
	booking.Status = next
	booking.CompletedAt = completedAt
	booking.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) SetConfirmedDate(_ context.Context, id uuid.UUID, confirmedDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking, ok := r.bookings[id]; ok {
		booking.ConfirmedDate = &confirmedDate
	}
	return nil
}

// ---------- reviews ----------

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*entity.Review
}

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *review
	r.reviews = append(r.reviews, &copied)
	return nil
}

func (r *fakeReviewRepo) FindByCoachID(_ context.Context, coachID uuid.UUID) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Review
	for _, review := range r.reviews {
		if review.CoachID == coachID {
			copied := *review
			result = append(result, &copied)
		}
	}
	// Newest first, insertion order as tiebreak
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeReviewRepo) FindByReviewerID(_ context.Context, reviewerID uuid.UUID) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Review
	for _, review := range r.reviews {
		if review.ReviewerID == reviewerID {
			copied := *review
			result = append(result, &copied)
		}
	}
	return result, nil
}

// ---------- review invites ----------

type fakeReviewInviteRepo struct {
	mu      sync.Mutex
	invites map[uuid.UUID]*entity.ReviewInvite
}

func (r *fakeReviewInviteRepo) Create(_ context.Context, invite *entity.ReviewInvite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *invite
	r.invites[invite.ID] = &copied
	return nil
}

func (r *fakeReviewInviteRepo) FindByToken(_ context.Context, token uuid.UUID) (*entity.ReviewInvite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, invite := range r.invites {
		if invite.Token == token {
			copied := *invite
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewInviteRepo) TransitionIf(_ context.Context, id uuid.UUID, expected, next entity.InviteStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invite, ok := r.invites[id]
	if !ok || invite.Status != expected {
		return false, nil
	}
	invite.Status = next
	return true, nil
}

// ---------- ensemble reviews ----------

type fakeEnsembleReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.EnsembleReview
}

func (r *fakeEnsembleReviewRepo) Create(_ context.Context, review *entity.EnsembleReview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeEnsembleReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.EnsembleReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, nil
	}
	copied := *review
	return &copied, nil
}

func (r *fakeEnsembleReviewRepo) FindPendingByCoachID(_ context.Context, coachID uuid.UUID) ([]*entity.EnsembleReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.EnsembleReview
	for _, review := range r.reviews {
		if review.CoachID == coachID && review.Status == entity.EnsembleReviewStatusPending {
			copied := *review
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeEnsembleReviewRepo) CompleteIf(_ context.Context, id uuid.UUID, rating int, feedback *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok || review.Status != entity.EnsembleReviewStatusPending {
		return false, nil
	}
	review.Rating = &rating
	review.Feedback = feedback
	review.Status = entity.EnsembleReviewStatusCompleted
	return true, nil
}

// ---------- notifier ----------

type fakeNotifier struct {
	mu    sync.Mutex
	sends []notifier.TemplateKind
}

func (n *fakeNotifier) Send(_ context.Context, _ string, kind notifier.TemplateKind, _ map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sends = append(n.sends, kind)
	return nil
}

// ---------- seed helpers ----------

func seedAccount(repo *repository.Repository, email string) *entity.Account {
	now := time.Now()
	account := &entity.Account{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     "Test Account",
		Email:    email,
		IsActive: true,
	}
	_ = repo.Account.Create(context.Background(), account)
	return account
}

func seedCoach(repo *repository.Repository, accountID uuid.UUID, hourlyRate float64) *entity.CoachProfile {
	now := time.Now()
	coach := &entity.CoachProfile{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		AccountID:  accountID,
		Name:       "Test Coach",
		Location:   "Vienna",
		HourlyRate: hourlyRate,
	}
	_ = repo.Coach.Create(context.Background(), coach)
	return coach
}

func seedEnsemble(repo *repository.Repository, accountID uuid.UUID) *entity.EnsembleProfile {
	now := time.Now()
	ensemble := &entity.EnsembleProfile{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		AccountID:    accountID,
		Name:         "Test Ensemble",
		EnsembleType: "choir",
		Location:     "Vienna",
		MemberCount:  24,
	}
	_ = repo.Ensemble.Create(context.Background(), ensemble)
	return ensemble
}

func seedBooking(repo *repository.Repository, ensembleID, coachID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		EnsembleID:    ensembleID,
		CoachID:       coachID,
		Status:        status,
		ProposedDates: []time.Time{now.Add(7 * 24 * time.Hour)},
		SessionType:   "clinic",
		Rate:          80,
		TotalCost:     160,
	}
	_ = repo.Booking.Create(context.Background(), booking)
	return booking
}
