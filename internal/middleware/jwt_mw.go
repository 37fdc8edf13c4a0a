package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// AuthCookieName is the cookie carrying the session token
	AuthCookieName = "authToken"

	AuthUserKey  = "authUser"
	AuthEmailKey = "authEmail"
	AuthNameKey  = "authName"
	AuthRoleKey  = "authRole"
)

// extractToken finds the session token on a request: the auth cookie first,
// then an Authorization: Bearer header.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

// JWTAuthMiddleware creates a middleware that resolves the session from the
// request's token and rejects the request with 401 when there is none or it
// does not verify
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Set identity in context
		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthEmailKey, claims.Email)
		c.Set(AuthNameKey, claims.Name)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}
