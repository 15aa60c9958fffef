package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gorgui02/rental-management-backend/internal/user"
)

// RequireRole gates a route group to the given roles. Auth must run first.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("currentUser")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		u, ok := v.(*user.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		for _, role := range allowedRoles {
			if u.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// RequireAdmin restricts a route group to administrators.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(user.RoleAdmin)
}
