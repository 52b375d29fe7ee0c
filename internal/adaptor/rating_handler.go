package adaptor

import (
	"encoding/json"
	"net/http"

	"coach-connect/internal/dto/request"
	"coach-connect/internal/usecase"
	"coach-connect/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

func (h *RatingHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.SubmitReview(r.Context(), accountID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Review submitted", resp)
}

func (h *RatingHandler) GetCoachRating(w http.ResponseWriter, r *http.Request) {
	coachID, err := uuid.Parse(chi.URLParam(r, "coachID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid coach ID", nil)
		return
	}

	resp, err := h.service.GetCoachRating(r.Context(), coachID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Coach rating retrieved", resp)
}

func (h *RatingHandler) ListCoachReviews(w http.ResponseWriter, r *http.Request) {
	coachID, err := uuid.Parse(chi.URLParam(r, "coachID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid coach ID", nil)
		return
	}

	resp, err := h.service.ListCoachReviews(r.Context(), coachID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Coach reviews retrieved", resp)
}
