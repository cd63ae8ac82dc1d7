package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
)

// RequireHotelOwner ensures the authenticated user may manage hotel
// resources. It MUST be used after auth.AuthRequired middleware.
func RequireHotelOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !auth.GetUserRole(c).CanManageHotel() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: hotel owner access required"})
			return
		}
		c.Next()
	}
}
