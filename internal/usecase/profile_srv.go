package usecase

import (
	"context"
	"fmt"
	"time"

	"coach-connect/internal/data/entity"
	"coach-connect/internal/data/repository"
	"coach-connect/internal/dto/request"
	"coach-connect/internal/dto/response"
	"coach-connect/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService manages coach and ensemble profiles. An account holds
// at most one coach profile and any number of ensemble profiles.
type ProfileService interface {
	CreateCoachProfile(ctx context.Context, accountID uuid.UUID, req *request.CreateCoachProfileRequest) (*response.CoachProfileResponse, error)
	GetCoach(ctx context.Context, coachID uuid.UUID) (*response.CoachProfileResponse, error)
	DeleteCoach(ctx context.Context, accountID uuid.UUID) error
	CreateEnsembleProfile(ctx context.Context, accountID uuid.UUID, req *request.CreateEnsembleProfileRequest) (*response.EnsembleProfileResponse, error)
	ListEnsembles(ctx context.Context, accountID uuid.UUID) ([]response.EnsembleProfileResponse, error)
}

type profileService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProfileService(repo *repository.Repository, log *zap.Logger) ProfileService {
	return &profileService{
		repo: repo,
		log:  log.With(zap.String("service", "profile")),
	}
}

func (s *profileService) CreateCoachProfile(ctx context.Context, accountID uuid.UUID, req *request.CreateCoachProfileRequest) (*response.CoachProfileResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create coach profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Coach.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("resolve coach profile: %w", ErrUnavailable)
	}
	if existing != nil {
		return nil, fmt.Errorf("account already has a coach profile: %w", ErrInvalidState)
	}

	now := time.Now()
	coach := &entity.CoachProfile{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		AccountID:  accountID,
		Name:       req.Name,
		Location:   req.Location,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
	}

	if err := s.repo.Coach.Create(ctx, coach); err != nil {
		s.log.Error("Failed to create coach profile",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return nil, fmt.Errorf("create coach profile: %w", ErrUnavailable)
	}

	s.log.Info("Coach profile created",
		zap.String("coach_id", coach.ID.String()),
		zap.String("account_id", accountID.String()),
	)

	resp := response.CoachToResponse(coach)
	return &resp, nil
}

func (s *profileService) GetCoach(ctx context.Context, coachID uuid.UUID) (*response.CoachProfileResponse, error) {
	coach, err := s.repo.Coach.FindByID(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("find coach %s: %w", coachID.String(), ErrUnavailable)
	}
	if coach == nil {
		return nil, fmt.Errorf("coach %s: %w", coachID.String(), ErrNotFound)
	}

	resp := response.CoachToResponse(coach)
	return &resp, nil
}

func (s *profileService) DeleteCoach(ctx context.Context, accountID uuid.UUID) error {
	coach, err := s.repo.Coach.FindByAccountID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("resolve coach profile: %w", ErrUnavailable)
	}
	if coach == nil {
		return fmt.Errorf("account has no coach profile: %w", ErrNotFound)
	}

	if err := s.repo.Coach.DeleteCascade(ctx, coach.ID); err != nil {
		s.log.Error("Failed to delete coach profile",
			zap.Error(err),
			zap.String("coach_id", coach.ID.String()),
		)
		return fmt.Errorf("delete coach profile: %w", ErrUnavailable)
	}

	s.log.Info("Coach profile deleted", zap.String("coach_id", coach.ID.String()))
	return nil
}

func (s *profileService) CreateEnsembleProfile(ctx context.Context, accountID uuid.UUID, req *request.CreateEnsembleProfileRequest) (*response.EnsembleProfileResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create ensemble profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	ensemble := &entity.EnsembleProfile{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		AccountID:    accountID,
		Name:         req.Name,
		EnsembleType: req.EnsembleType,
		Location:     req.Location,
		MemberCount:  req.MemberCount,
	}

	if err := s.repo.Ensemble.Create(ctx, ensemble); err != nil {
		s.log.Error("Failed to create ensemble profile",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return nil, fmt.Errorf("create ensemble profile: %w", ErrUnavailable)
	}

	s.log.Info("Ensemble profile created",
		zap.String("ensemble_id", ensemble.ID.String()),
		zap.String("account_id", accountID.String()),
	)

	resp := response.EnsembleToResponse(ensemble)
	return &resp, nil
}

func (s *profileService) ListEnsembles(ctx context.Context, accountID uuid.UUID) ([]response.EnsembleProfileResponse, error) {
	ensembles, err := s.repo.Ensemble.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find ensembles: %w", ErrUnavailable)
	}

	responses := make([]response.EnsembleProfileResponse, len(ensembles))
	for i, ensemble := range ensembles {
		responses[i] = response.EnsembleToResponse(ensemble)
	}
	return responses, nil
}
