package api

import (
	"net/http" // HTTP status codes

	"donation_system/internal/service" // Auth service

	"github.com/gin-gonic/gin" // Gin web framework
)

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// RegisterHandler lets an admin create a user in their own foundation
func RegisterHandler(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c) // Admin making the request
		if !ok {
			return
		}
		var req service.RegisterInput // Bind JSON request to struct
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		user, err := svc.RegisterUser(c.Request.Context(), req, p.FoundationID)
		if err != nil {
			respondError(c, err) // Conflict, validation or server error
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered", "user": user})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginInput // Bind JSON request to struct
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		token, err := svc.AuthenticateUser(c.Request.Context(), req)
		if err != nil {
			respondError(c, err) // Uniform 401 for bad username or password
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token}) // Return the token in the response
	}
}
