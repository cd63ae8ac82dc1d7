package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/quickstay/hotel-booking-backend/internal/user"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// GetUserID returns the authenticated user's local ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(ctxUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserRole returns the authenticated user's role, defaulting to guest.
func GetUserRole(c *gin.Context) user.Role {
	if v, ok := c.Get(ctxUserRole); ok {
		if r, ok := v.(user.Role); ok {
			return r
		}
	}
	return user.RoleGuest
}
