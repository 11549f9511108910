package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mia-backend/internal/http/response"
	"github.com/yungbote/mia-backend/internal/modules/ideation"
	"github.com/yungbote/mia-backend/internal/platform/apierr"
	"github.com/yungbote/mia-backend/internal/services"
)

// respondServiceError maps service and engine errors onto HTTP statuses so
// every handler fails the same way.
func respondServiceError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		response.RespondError(c, http.StatusNotFound, "session_not_found", err)
	case errors.Is(err, services.ErrGameCount),
		errors.Is(err, ideation.ErrInvalidRatingRange),
		errors.Is(err, ideation.ErrUnknownSchema):
		response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, services.ErrSchemaNotSet),
		errors.Is(err, services.ErrRatingsNotSet),
		errors.Is(err, services.ErrNothingToLock):
		response.RespondError(c, http.StatusConflict, "step_incomplete", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
