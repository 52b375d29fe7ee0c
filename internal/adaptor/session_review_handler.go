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

type SessionReviewHandler struct {
	service usecase.SessionReviewService
	log     *zap.Logger
}

func NewSessionReviewHandler(service usecase.SessionReviewService, log *zap.Logger) *SessionReviewHandler {
	return &SessionReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "session_review")),
	}
}

func (h *SessionReviewHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	resp, err := h.service.ListPending(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Pending session reviews retrieved", resp)
}

func (h *SessionReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid session review ID", nil)
		return
	}

	var req request.SubmitSessionReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Submit(r.Context(), accountID, reviewID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Session review submitted", resp)
}
