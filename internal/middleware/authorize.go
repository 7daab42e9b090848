package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitx/api/internal/models"
)

// RequireRole admits users whose role allows the required one. It must run
// after Auth.
func RequireRole(required models.Role) gin.HandlerFunc {
	forbidden := "Forbidden: " + roleTitle(required) + " access required"

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Unauthorized: No user authenticated")
			return
		}

		if !user.Role.Allows(required) {
			abort(c, http.StatusForbidden, forbidden)
			return
		}

		c.Next()
	}
}

func roleTitle(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "Admin"
	case models.RoleUser:
		return "User"
	}
	return string(role)
}
