package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coach-connect/internal/data/entity"
	"coach-connect/internal/data/repository"
	"coach-connect/internal/dto/request"
	"coach-connect/internal/dto/response"
	"coach-connect/pkg/notifier"
	"coach-connect/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewInviteService manages single-use review tokens. A coach issues
// an invite to an ensemble email; the recipient can accept it (which
// creates a review) or decline it, exactly once, before it expires.
type ReviewInviteService interface {
	IssueInvite(ctx context.Context, accountID uuid.UUID, req *request.IssueInviteRequest) (*response.InviteResponse, error)
	GetInvite(ctx context.Context, accountID uuid.UUID, token uuid.UUID) (*response.InviteResponse, error)
	AcceptInvite(ctx context.Context, accountID uuid.UUID, token uuid.UUID, req *request.AcceptInviteRequest) (*response.ReviewResponse, error)
	DeclineInvite(ctx context.Context, accountID uuid.UUID, token uuid.UUID) (*response.InviteResponse, error)
}

type reviewInviteService struct {
	repo     *repository.Repository
	rating   RatingService
	notifier notifier.Notifier
	ttl      time.Duration
	log      *zap.Logger
}

func NewReviewInviteService(repo *repository.Repository, rating RatingService, n notifier.Notifier, ttlDays int, log *zap.Logger) ReviewInviteService {
	return &reviewInviteService{
		repo:     repo,
		rating:   rating,
		notifier: n,
		ttl:      time.Duration(ttlDays) * 24 * time.Hour,
		log:      log.With(zap.String("service", "review_invite")),
	}
}

func (s *reviewInviteService) IssueInvite(ctx context.Context, accountID uuid.UUID, req *request.IssueInviteRequest) (*response.InviteResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Issue invite validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	coach, err := s.repo.Coach.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("resolve coach profile: %w", ErrUnavailable)
	}
	if coach == nil {
		return nil, fmt.Errorf("caller has no coach profile: %w", ErrForbidden)
	}

	now := time.Now()
	invite := &entity.ReviewInvite{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Token:         uuid.New(),
		CoachID:       coach.ID,
		EnsembleEmail: strings.ToLower(strings.TrimSpace(req.EnsembleEmail)),
		Status:        entity.InviteStatusPending,
		ExpiresAt:     now.Add(s.ttl),
	}

	if err := s.repo.ReviewInvite.Create(ctx, invite); err != nil {
		s.log.Error("Failed to create review invite",
			zap.Error(err),
			zap.String("coach_id", coach.ID.String()),
		)
		return nil, fmt.Errorf("create invite: %w", ErrUnavailable)
	}

	// Deliver the invite email in the background. A delivery failure
	// never fails the issue call; the invite stays redeemable via its
	// token regardless.
	go s.sendInviteEmail(invite, coach.Name)

	s.log.Info("Review invite issued",
		zap.String("invite_id", invite.ID.String()),
		zap.String("coach_id", coach.ID.String()),
		zap.Time("expires_at", invite.ExpiresAt),
	)

	resp := response.InviteToResponse(invite, coach.Name)
	return &resp, nil
}

func (s *reviewInviteService) GetInvite(ctx context.Context, accountID uuid.UUID, token uuid.UUID) (*response.InviteResponse, error) {
	invite, err := s.fetchGuarded(ctx, accountID, token)
	if err != nil {
		return nil, err
	}

	var coachName string
	coach, err := s.repo.Coach.FindByID(ctx, invite.CoachID)
	if err == nil && coach != nil {
		coachName = coach.Name
	}

	resp := response.InviteToResponse(invite, coachName)
	return &resp, nil
}

func (s *reviewInviteService) AcceptInvite(ctx context.Context, accountID uuid.UUID, token uuid.UUID, req *request.AcceptInviteRequest) (*response.ReviewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Accept invite validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	invite, err := s.fetchGuarded(ctx, accountID, token)
	if err != nil {
		return nil, err
	}

	// Claim the token before writing the review. Under concurrent
	// redemption only one caller gets past this point.
	ok, err := s.repo.ReviewInvite.TransitionIf(ctx, invite.ID,
		entity.InviteStatusPending, entity.InviteStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("accept invite %s: %w", invite.ID.String(), ErrUnavailable)
	}
	if !ok {
		return nil, fmt.Errorf("invite already redeemed: %w", ErrInvalidState)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CoachID:    invite.CoachID,
		ReviewerID: s.resolveReviewerID(ctx, accountID),
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		// The token is spent but the review write failed. Surface the
		// failure; the invite is not reopened.
		s.log.Error("Failed to create review from invite",
			zap.Error(err),
			zap.String("invite_id", invite.ID.String()),
		)
		return nil, fmt.Errorf("create review: %w", ErrUnavailable)
	}

	if _, _, err := s.rating.Recompute(ctx, invite.CoachID); err != nil {
		s.log.Warn("Rating recompute failed after invite acceptance",
			zap.Error(err),
			zap.String("coach_id", invite.CoachID.String()),
		)
	}

	s.log.Info("Review invite accepted",
		zap.String("invite_id", invite.ID.String()),
		zap.String("review_id", review.ID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewInviteService) DeclineInvite(ctx context.Context, accountID uuid.UUID, token uuid.UUID) (*response.InviteResponse, error) {
	invite, err := s.fetchGuarded(ctx, accountID, token)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.ReviewInvite.TransitionIf(ctx, invite.ID,
		entity.InviteStatusPending, entity.InviteStatusDeclined)
	if err != nil {
		return nil, fmt.Errorf("decline invite %s: %w", invite.ID.String(), ErrUnavailable)
	}
	if !ok {
		return nil, fmt.Errorf("invite already redeemed: %w", ErrInvalidState)
	}

	invite.Status = entity.InviteStatusDeclined

	s.log.Info("Review invite declined", zap.String("invite_id", invite.ID.String()))

	var coachName string
	coach, err := s.repo.Coach.FindByID(ctx, invite.CoachID)
	if err == nil && coach != nil {
		coachName = coach.Name
	}

	resp := response.InviteToResponse(invite, coachName)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

// fetchGuarded loads an invite by token, checks the caller's account
// email matches the invited address, and applies lazy expiry: a
// pending invite past its deadline is written back as expired and
// reported with ErrExpired. Invites already redeemed or declined are
// reported with ErrInvalidState, so only pending invites flow out.
func (s *reviewInviteService) fetchGuarded(ctx context.Context, accountID uuid.UUID, token uuid.UUID) (*entity.ReviewInvite, error) {
	invite, err := s.repo.ReviewInvite.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find invite: %w", ErrUnavailable)
	}
	if invite == nil {
		return nil, fmt.Errorf("invite %s: %w", token.String(), ErrNotFound)
	}

	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", ErrUnavailable)
	}
	if account == nil {
		return nil, fmt.Errorf("account %s: %w", accountID.String(), ErrNotFound)
	}
	if !strings.EqualFold(account.Email, invite.EnsembleEmail) {
		return nil, fmt.Errorf("invite addressed to another email: %w", ErrForbidden)
	}

	now := time.Now()
	if invite.EffectiveStatus(now) == entity.InviteStatusExpired && invite.Status == entity.InviteStatusPending {
		// Best-effort write-back; the effective status already decided
		// the outcome, so a lost race here changes nothing.
		if _, err := s.repo.ReviewInvite.TransitionIf(ctx, invite.ID,
			entity.InviteStatusPending, entity.InviteStatusExpired); err != nil {
			s.log.Warn("Failed to persist invite expiry",
				zap.Error(err),
				zap.String("invite_id", invite.ID.String()),
			)
		}
		invite.Status = entity.InviteStatusExpired
	}

	if invite.Status == entity.InviteStatusExpired {
		return nil, fmt.Errorf("invite expired at %s: %w",
			invite.ExpiresAt.Format(time.RFC3339), ErrExpired)
	}
	if invite.Status != entity.InviteStatusPending {
		return nil, fmt.Errorf("invite is %s: %w", invite.Status, ErrInvalidState)
	}

	return invite, nil
}

// resolveReviewerID picks the identity reviews are deduplicated by.
// Accounts reviewing through an ensemble profile use that profile's
// ID so invite-based and booking-based reviews from the same ensemble
// collapse into one aggregate entry; accounts without one fall back
// to the account ID.
func (s *reviewInviteService) resolveReviewerID(ctx context.Context, accountID uuid.UUID) uuid.UUID {
	ensembles, err := s.repo.Ensemble.FindByAccountID(ctx, accountID)
	if err != nil {
		s.log.Warn("Failed to resolve ensemble profiles for reviewer",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return accountID
	}
	if len(ensembles) > 0 {
		return ensembles[0].ID
	}
	return accountID
}

func (s *reviewInviteService) sendInviteEmail(invite *entity.ReviewInvite, coachName string) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payload := map[string]string{
		"coach_name": coachName,
		"token":      invite.Token.String(),
		"expires_at": invite.ExpiresAt.Format("2 January 2006"),
	}

	if err := s.notifier.Send(ctx, invite.EnsembleEmail, notifier.TemplateReviewInvite, payload); err != nil {
		s.log.Warn("Failed to send review invite email",
			zap.Error(err),
			zap.String("invite_id", invite.ID.String()),
		)
	}
}
