package handlers

import (
	"net/http"
	"strconv"

	apperrors "entity-tracker-backend/internal/errors"
	"entity-tracker-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error   string `json:"error" example:"entity not found"`
	Details string `json:"details,omitempty"`
}

// respondError writes err with the status its kind maps to. Unexpected
// errors are logged and reported under the generic message.
func respondError(c *gin.Context, err error, message string) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperrors.IsValidation(err), apperrors.IsUnsupportedType(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case apperrors.IsTooLarge(err):
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
	default:
		logger.WithContext(c.Request.Context()).WithError(err).Error(message)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message, Details: err.Error()})
	}
}

func badRequest(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// parseID reads a positive integer path parameter. It writes a 400 and
// returns false when the parameter is not one.
func parseID(c *gin.Context, param, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + label + " ID"})
		return 0, false
	}
	return uint(id), true
}
