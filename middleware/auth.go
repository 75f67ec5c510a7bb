package middleware

import (
	"context"
	"net/http"
	"strings"

	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth.
const (
	CtxUserID = "userID"
	CtxEmail  = "email"
	CtxRole   = "role"
	CtxToken  = "token"
)

// RequireAuth validates the bearer token and checks it has not been revoked.
// When roles are given, the token's role must be one of them.
func RequireAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// A token is live only while its hash sits in the auth cache;
		// sign-out deletes the hash.
		key := utils.AuthCachePrefix + utils.HashToken(tokenString)
		if exists, err := utils.GetAuthCacheClient().Exists(context.Background(), key).Result(); err != nil || exists == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, sign in again"})
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxToken, tokenString)
		c.Next()
	}
}

// UserID returns the authenticated account id set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
