package wire

import (
	"net/http"

	"coach-connect/internal/adaptor"
	"coach-connect/internal/data/repository"
	"coach-connect/internal/usecase"
	"coach-connect/pkg/database"
	"coach-connect/pkg/middleware"
	"coach-connect/pkg/notifier"
	"coach-connect/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Wire assembles the router: repositories over the database pool,
// services over the repositories, handlers over the services, and the
// route tree with shared middleware.
func Wire(db database.PgxIface, n notifier.Notifier, config *utils.Config, log *zap.Logger) http.Handler {
	repo := repository.NewRepository(db, log)
	service := usecase.NewService(repo, n, config, log)
	handler := adaptor.NewHandler(service, log)

	r := chi.NewRouter()

	r.Use(middleware.Recover(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS([]string{"*"}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	authSession := middleware.AuthSession(repo.Session, repo.Account, log)

	r.Route("/api/v1", func(r chi.Router) {
		authRoutes(r, handler.Auth, authSession)
		profileRoutes(r, handler.Profile, authSession)
		bookingRoutes(r, handler.Booking, authSession)
		ratingRoutes(r, handler.Rating, authSession)
		inviteRoutes(r, handler.ReviewInvite, authSession)
		sessionReviewRoutes(r, handler.SessionReview, authSession)
	})

	return r
}
