package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/americano/projectsync/internal/api/http/middleware"
	"github.com/americano/projectsync/internal/projects/domain"
)

// writeError maps domain errors onto status codes. Store failures are logged
// and answered with a generic message.
func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		persistErr *domain.PersistenceError
		validErr   *domain.ValidationError
	)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		respond(c, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &persistErr):
		h.logFailure(c, err)
		respond(c, http.StatusInternalServerError, "internal server error", nil)
	case errors.As(err, &validErr):
		respond(c, http.StatusBadRequest, "validation failed", validErr.Violations)
	default:
		h.logFailure(c, err)
		respond(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message, nil)
}

func (h *Handler) logFailure(c *gin.Context, err error) {
	h.logger.Error("project request failed",
		zap.String("request_id", middleware.GetRequestID(c.Request.Context())),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
}

func respond(c *gin.Context, status int, message string, violations []domain.Violation) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:     status,
		Error:      http.StatusText(status),
		Message:    message,
		Violations: violations,
	})
}
