package wire

import (
	"net/http"

	"coach-connect/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

type authMiddleware func(http.Handler) http.Handler

func authRoutes(r chi.Router, h *adaptor.AuthHandler, auth authMiddleware) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/logout", h.Logout)
		})
	})
}

func profileRoutes(r chi.Router, h *adaptor.ProfileHandler, auth authMiddleware) {
	r.Get("/coaches/{coachID}", h.GetCoach)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/coaches", h.CreateCoach)
		r.Delete("/coaches", h.DeleteCoach)
		r.Post("/ensembles", h.CreateEnsemble)
		r.Get("/ensembles", h.ListEnsembles)
	})
}

func bookingRoutes(r chi.Router, h *adaptor.BookingHandler, auth authMiddleware) {
	r.Route("/bookings", func(r chi.Router) {
		r.Use(auth)
		r.Post("/", h.Create)
		r.Get("/{bookingID}", h.Get)
		r.Put("/{bookingID}/accept", h.Accept)
		r.Put("/{bookingID}/decline", h.Decline)
		r.Put("/{bookingID}/complete", h.Complete)
	})
}

func ratingRoutes(r chi.Router, h *adaptor.RatingHandler, auth authMiddleware) {
	r.Get("/coaches/{coachID}/rating", h.GetCoachRating)
	r.Get("/coaches/{coachID}/reviews", h.ListCoachReviews)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/reviews", h.SubmitReview)
	})
}

func inviteRoutes(r chi.Router, h *adaptor.ReviewInviteHandler, auth authMiddleware) {
	r.Route("/review-invites", func(r chi.Router) {
		r.Use(auth)
		r.Post("/", h.Issue)
		r.Get("/{token}", h.Get)
		r.Post("/{token}/accept", h.Accept)
		r.Put("/{token}/decline", h.Decline)
	})
}

func sessionReviewRoutes(r chi.Router, h *adaptor.SessionReviewHandler, auth authMiddleware) {
	r.Route("/session-reviews", func(r chi.Router) {
		r.Use(auth)
		r.Get("/pending", h.ListPending)
		r.Put("/{reviewID}", h.Submit)
	})
}
