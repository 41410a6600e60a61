package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// CtxUserID is the gin context key holding the authenticated user id.
	CtxUserID = "user_id"
)

// UserID extracts the authenticated user id from the gin context.
// This is set by WithUser.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}
