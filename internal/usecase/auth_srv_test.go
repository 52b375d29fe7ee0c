package usecase_test

import (
	"context"
	"testing"

	"coach-connect/internal/dto/request"
	"coach-connect/internal/usecase"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewAuthService(repo, 24, testLogger())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Maria Keller",
		Email:    "Maria@Example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.Equal(t, "maria@example.com", resp.Email)
	require.Empty(t, resp.Token)

	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email:    "maria@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewAuthService(repo, 24, testLogger())

	req := &request.RegisterRequest{
		Name:     "Maria Keller",
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
	}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, usecase.ErrValidation)
}

func TestLogout_RevokesSession(t *testing.T) {
	repo := newTestRepo()
	svc := usecase.NewAuthService(repo, 24, testLogger())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Maria Keller",
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "maria@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.Token))

	session, err := repo.Session.FindValidSession(context.Background(), login.Token)
	require.NoError(t, err)
	require.Nil(t, session)
}
