package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emanuelrivas243/streamia-server/logger"
	"github.com/emanuelrivas243/streamia-server/services"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// AuthMiddleware extracts the bearer credential, verifies it, and attaches
// the bound account id and email to the request context. It runs before any
// handler logic on protected routes.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				// A verification failure that is not about the token itself
				// is a server fault, not an authentication failure.
				logger.Error("token verification failed unexpectedly", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.AccountID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}
