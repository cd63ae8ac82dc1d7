package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.POST("/stripe-payment", authMiddleware, h.StripePayment)
	group.POST("/verify-payment", authMiddleware, h.VerifyPayment)

	// Signed by the processor, not by a user session.
	group.POST("/stripe-webhook", h.StripeWebhook)
}
