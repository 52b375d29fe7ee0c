package middleware

import (
	"net/http"
	"strings"

	"coach-connect/internal/data/repository"
	"coach-connect/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the bearer session token and resolves the
// caller's account id and email into the request context. Everything
// downstream trusts this resolution.
func AuthSession(sessionRepo repository.SessionRepository, accountRepo repository.AccountRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			account, err := accountRepo.FindByID(r.Context(), session.AccountID)
			if err != nil {
				logger.Error("Failed to resolve session account",
					zap.Error(err),
					zap.String("account_id", session.AccountID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if account == nil || !account.IsActive {
				logger.Warn("Session for missing or deactivated account",
					zap.String("account_id", session.AccountID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetAccountContext(r.Context(), account.ID, account.Email)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
