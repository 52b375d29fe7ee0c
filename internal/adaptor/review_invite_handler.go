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

type ReviewInviteHandler struct {
	service usecase.ReviewInviteService
	log     *zap.Logger
}

func NewReviewInviteHandler(service usecase.ReviewInviteService, log *zap.Logger) *ReviewInviteHandler {
	return &ReviewInviteHandler{
		service: service,
		log:     log.With(zap.String("handler", "review_invite")),
	}
}

func (h *ReviewInviteHandler) Issue(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	var req request.IssueInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.IssueInvite(r.Context(), accountID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Review invite issued", resp)
}

func (h *ReviewInviteHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	token, err := uuid.Parse(chi.URLParam(r, "token"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid invite token", nil)
		return
	}

	resp, err := h.service.GetInvite(r.Context(), accountID, token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Invite retrieved", resp)
}

func (h *ReviewInviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	token, err := uuid.Parse(chi.URLParam(r, "token"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid invite token", nil)
		return
	}

	var req request.AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.AcceptInvite(r.Context(), accountID, token, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Review submitted", resp)
}

func (h *ReviewInviteHandler) Decline(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	token, err := uuid.Parse(chi.URLParam(r, "token"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid invite token", nil)
		return
	}

	resp, err := h.service.DeclineInvite(r.Context(), accountID, token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Invite declined", resp)
}
