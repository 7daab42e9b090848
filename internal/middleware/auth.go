package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fitx/api/internal/models"
	"fitx/api/internal/service"
)

const currentUserKey = "current_user"

// TokenVerifier resolves a bearer token to the stored user.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (models.User, error)
}

// Auth requires "Authorization: Bearer <token>" and attaches the user record
// read from the store, never the token payload.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := verifier.VerifyToken(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingToken):
				abort(c, http.StatusUnauthorized, "Access token required")
			case errors.Is(err, service.ErrInvalidToken):
				abort(c, http.StatusUnauthorized, "Invalid or expired token")
			case errors.Is(err, service.ErrUserNotFound):
				abort(c, http.StatusNotFound, "User not found")
			default:
				_ = c.Error(err)
				abort(c, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
