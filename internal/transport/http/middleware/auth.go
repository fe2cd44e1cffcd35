package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/goals-api/internal/reqctx"
	"github.com/ErlanBelekov/goals-api/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	errUnauthorized = "Unauthorized"

	// UserIDKey is the gin context key holding the authenticated subject.
	UserIDKey = "userID"
)

// TokenValidator is satisfied by *token.Manager.
type TokenValidator interface {
	Validate(raw string) (string, error)
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return raw, raw != ""
}

// Auth validates a Bearer token and sets the subject both in the gin context
// (UserIDKey) and in the request context for logging.
func Auth(tokens TokenValidator, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		raw, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, err := tokens.Validate(raw)
		if err != nil {
			logger.InfoContext(c.Request.Context(), "token rejected", "cause", token.Cause(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(reqctx.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}
