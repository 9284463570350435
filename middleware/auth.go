package middleware

import (
	"strings"

	"voyago/utils"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware extracts the caller's identity from a bearer token when
// one is present. Requests without a valid token proceed anonymously; the
// planner refuses to submit for an anonymous caller, everything else works.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if userID, err := utils.ExtractIDFromToken(tokenString); err == nil {
				c.Set("userID", userID)
			}
		}
		c.Next()
	}
}

// UserID returns the signed-in user's id, or "" for an anonymous request.
func UserID(c *gin.Context) string {
	return c.GetString("userID")
}
