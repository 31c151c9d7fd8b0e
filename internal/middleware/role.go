package middleware

import (
	"net/http" // HTTP status codes

	"donation_system/internal/domain" // Role allow-lists

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRoles only lets callers whose token role is in allowed through.
// It must run after JWTAuthMiddleware.
func RequireRoles(allowed domain.Roles) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !allowed.Allows(p.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient role"})
			return
		}
		c.Next()
	}
}
