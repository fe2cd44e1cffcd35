package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/goals-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer   = "Internal server error"
	errInvalidJSON      = "Request body must be a valid JSON object"
	errMissingToken     = "Authorization header with a Bearer token is required"
	errTokenInvalid     = "Token is invalid or expired"
	errEmailTaken       = "A user with this email already exists"
	errUserNotFound     = "User not found"
	errGoalNotFound     = "Goal not found"
	errPasswordMismatch = "Email and password do not match"
	errInvalidRequest   = "Invalid request"
)

// writeError maps a use-case error to its status code and a fixed message.
// Field validation messages are passed through; everything else that reaches
// the 500 branch is logged and never echoed to the client.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, domain.ErrRequestValidation), errors.Is(err, domain.ErrInvalidRequest):
		msg := errInvalidRequest
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			msg = fe.Message
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	case errors.Is(err, domain.ErrPasswordMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errPasswordMismatch})
	case errors.Is(err, domain.ErrDecodeToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
	case errors.Is(err, domain.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errGoalNotFound})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
	default:
		logger.ErrorContext(ctx, op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
