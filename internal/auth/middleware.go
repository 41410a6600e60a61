package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// WithUser requires an authenticated user id on every request.
// Token verification happens upstream (gateway); by the time a request
// reaches this service the verified subject is carried in X-User-Id.
func WithUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "missing user identity",
			})
			return
		}

		c.Set(CtxUserID, uid)
		c.Next()
	}
}

// OptionalUser sets a user id in context without enforcing auth.
// - If X-User-Id is missing, it falls back to "demo-user".
// - Use this ONLY for development/testing.
func OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = "demo-user"
		}

		c.Set(CtxUserID, uid)
		c.Next()
	}
}
