package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emanuelrivas243/streamia-server/logger"
	"github.com/emanuelrivas243/streamia-server/middleware"
	"github.com/emanuelrivas243/streamia-server/services"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Anything unrecognized is logged with context and reported as a generic
// 500; internal details never reach the caller.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidCredentials.Error()})
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidToken.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrForbidden.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrNotFound.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrConflict.Error()})
	case errors.Is(err, services.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrAccountExists.Error()})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrUpstreamUnavailable.Error()})
	case errors.Is(err, services.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrStoreUnavailable.Error()})
	case errors.Is(err, services.ErrMailDelivery):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrMailDelivery.Error()})
	default:
		logger.Error("unexpected handler error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindingErrorMessage turns a gin binding failure into one actionable
// message, surfacing only the first violation.
func bindingErrorMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "invalid request format"
	}

	for _, e := range ve {
		switch e.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", e.Field())
		case "email":
			return "please provide a valid email address"
		case "min":
			return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
		case "max":
			return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
		case "eqfield":
			return "passwords do not match"
		case "gte", "lte":
			return fmt.Sprintf("%s is out of range", e.Field())
		default:
			return fmt.Sprintf("%s is invalid", e.Field())
		}
	}
	return "invalid input data"
}

func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
}

// currentUserID reads the account id the auth middleware attached to the
// request context.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return primitive.NilObjectID, false
	}

	idStr, ok := raw.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return primitive.NilObjectID, false
	}
	return id, true
}
