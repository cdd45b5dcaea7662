// Package middleware holds the request authentication and role gates.
package middleware

import (
	"net/http"
	"strings"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
	CtxName   = "displayName"
)

// Auth verifies the Authorization: Bearer <token> header and stores the
// session claims in the Gin context. A missing header, a header not in
// bearer format, and a bad token are reported as distinct 401s.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing_token", "message": "authorization header required",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "malformed_token", "message": "authorization header format must be Bearer {token}",
			})
			return
		}

		claims, err := utils.ParseToken(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid_token", "message": "token is not valid",
			})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxName, claims.Name)
		c.Next()
	}
}

// RequireLead allows only lead and admin sessions through. Runs after Auth.
func RequireLead() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists || !role.(models.Role).IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden", "message": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
