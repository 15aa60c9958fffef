package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gorgui02/rental-management-backend/internal/auth"
)

// Auth validates the caller's session token and loads the account into the
// request context for downstream handlers.
func Auth(authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		u, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set("currentUser", u)
		c.Set("user_id", u.ID)
		c.Next()
	}
}
