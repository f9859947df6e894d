package middleware

import (
	"net/http"
	"strings"

	"roleplay-chat/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// NOTE: The context key for user ID is always 'userId' (lowercase 'd').
const userIDContextKey = "userId"

// RequireAuth validates the bearer token and places the authenticated user ID
// in the request context. The user ID is the only ambient identity state the
// rest of the application sees.
func RequireAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(userIDContextKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth extracts the user ID when a valid token is present but lets
// anonymous requests through.
func OptionalAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if claims, err := jwtService.ValidateToken(token); err == nil {
				c.Set(userIDContextKey, claims.UserID)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID, or empty when anonymous
func CurrentUserID(c *gin.Context) string {
	if v, exists := c.Get(userIDContextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
