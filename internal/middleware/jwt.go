package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"donation_system/internal/domain" // Role type
	"donation_system/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

const principalKey = "principal" // gin.Context key for the authenticated caller

// Principal is the authenticated caller attached to each protected request
type Principal struct {
	ID           string      // User ID
	Role         domain.Role // Role claimed by the token
	FoundationID string      // Tenant every query is scoped to
}

// CurrentPrincipal returns the caller set by JWTAuthMiddleware
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)                          // Parse the JWT token
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(principalKey, &Principal{
			ID:           claims.UserID,
			Role:         claims.Role,
			FoundationID: claims.FoundationID,
		})
		c.Next() // Proceed to the next handler
	}
}
