package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	EmailKey     contextKey = "email"
	TokenKey     contextKey = "token"
)

func GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	accountIDVal := ctx.Value(AccountIDKey)
	if accountIDVal == nil {
		return uuid.Nil, false
	}

	accountIDStr, ok := accountIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	accountID, err := uuid.Parse(accountIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return accountID, true
}

func GetEmailFromContext(ctx context.Context) (string, bool) {
	emailVal := ctx.Value(EmailKey)
	if emailVal == nil {
		return "", false
	}

	email, ok := emailVal.(string)
	return email, ok
}

func SetAccountContext(ctx context.Context, accountID uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, AccountIDKey, accountID.String())
	ctx = context.WithValue(ctx, EmailKey, email)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
