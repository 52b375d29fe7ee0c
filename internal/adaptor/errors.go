package adaptor

import (
	"errors"
	"net/http"

	"coach-connect/internal/usecase"
	"coach-connect/pkg/utils"
)

// writeServiceError maps service-layer sentinel errors onto HTTP
// responses. Anything unclassified is reported as a 500 without
// leaking the underlying error text.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidState):
		utils.ResponseConflict(w, err.Error())
	case errors.Is(err, usecase.ErrExpired):
		utils.ResponseGone(w, err.Error())
	case errors.Is(err, usecase.ErrUnavailable):
		utils.ResponseUnavailable(w, "service temporarily unavailable")
	default:
		utils.ResponseInternalError(w, "internal server error")
	}
}
