package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.POST("/check-availability", h.CheckAvailability)

	group.POST("/book", authMiddleware, h.Create)
	group.GET("/user-bookings", authMiddleware, h.ListUserBookings)
	group.GET("/details/:bookingId", authMiddleware, h.GetBooking)
	group.PATCH("/cancel/:bookingId", authMiddleware, h.Cancel)

	group.GET("/hotel-records", authMiddleware, ownerMiddleware, h.HotelRecords)
}
