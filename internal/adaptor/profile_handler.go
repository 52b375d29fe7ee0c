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

type ProfileHandler struct {
	service usecase.ProfileService
	log     *zap.Logger
}

func NewProfileHandler(service usecase.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log.With(zap.String("handler", "profile")),
	}
}

func (h *ProfileHandler) CreateCoach(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	var req request.CreateCoachProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateCoachProfile(r.Context(), accountID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Coach profile created", resp)
}

func (h *ProfileHandler) GetCoach(w http.ResponseWriter, r *http.Request) {
	coachID, err := uuid.Parse(chi.URLParam(r, "coachID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid coach ID", nil)
		return
	}

	resp, err := h.service.GetCoach(r.Context(), coachID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Coach profile retrieved", resp)
}

func (h *ProfileHandler) DeleteCoach(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	if err := h.service.DeleteCoach(r.Context(), accountID); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Coach profile deleted", nil)
}

func (h *ProfileHandler) CreateEnsemble(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	var req request.CreateEnsembleProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateEnsembleProfile(r.Context(), accountID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Ensemble profile created", resp)
}

func (h *ProfileHandler) ListEnsembles(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing account context")
		return
	}

	resp, err := h.service.ListEnsembles(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Ensemble profiles retrieved", resp)
}
