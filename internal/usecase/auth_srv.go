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
	"coach-connect/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo          *repository.Repository
	sessionExpiry time.Duration
	log           *zap.Logger
}

func NewAuthService(repo *repository.Repository, sessionExpiryHours int, log *zap.Logger) AuthService {
	return &authService{
		repo:          repo,
		sessionExpiry: time.Duration(sessionExpiryHours) * time.Hour,
		log:           log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.Account.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", ErrUnavailable)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", ErrUnavailable)
	}

	now := time.Now()
	account := &entity.Account{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.repo.Account.Create(ctx, account); err != nil {
		s.log.Error("Failed to create account", zap.Error(err))
		return nil, fmt.Errorf("create account: %w", ErrUnavailable)
	}

	s.log.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("email", email),
	)

	return &response.AuthResponse{
		AccountID: account.ID.String(),
		Name:      account.Name,
		Email:     account.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.repo.Account.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", ErrUnavailable)
	}
	if account == nil || !account.IsActive {
		return nil, fmt.Errorf("invalid credentials: %w", ErrForbidden)
	}

	if !utils.CheckPasswordHash(req.Password, account.PasswordHash) {
		s.log.Warn("Login failed: wrong password", zap.String("email", email))
		return nil, fmt.Errorf("invalid credentials: %w", ErrForbidden)
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		AccountID: account.ID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(s.sessionExpiry),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err))
		return nil, fmt.Errorf("create session: %w", ErrUnavailable)
	}

	s.log.Info("Account logged in", zap.String("account_id", account.ID.String()))

	return &response.AuthResponse{
		AccountID: account.ID.String(),
		Name:      account.Name,
		Email:     account.Email,
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", ErrUnavailable)
	}
	return nil
}
