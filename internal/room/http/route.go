package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	group.GET("", h.List)

	group.POST("", authMiddleware, ownerMiddleware, h.Create)
	group.GET("/owner", authMiddleware, ownerMiddleware, h.ListOwner)
	group.PATCH("/:roomId/availability", authMiddleware, ownerMiddleware, h.ToggleAvailability)
}
