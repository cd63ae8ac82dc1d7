package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/hotels")

	group.GET("", h.List)
	group.POST("", authMiddleware, h.Register)
}
