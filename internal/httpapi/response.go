package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jask/packeta/internal/apperr"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeError(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

func writeOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// handleError maps domain errors to responses. Errors without a kind are
// internal. Returns true if err was non-nil.
func handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		writeError(c, domainErr.HTTPStatus(), domainErr.Message, domainErr.Details)
		return true
	}
	writeError(c, http.StatusInternalServerError, "internal error", nil)
	return true
}
