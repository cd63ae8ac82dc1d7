package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/users")
	group.Use(authMiddleware)
	{
		group.GET("/me", h.Me)
		group.POST("/recent-search", h.StoreRecentSearch)
	}

	// Provider webhook: server-to-server, authenticated by signature only.
	g.POST("/auth/webhook", h.SyncWebhook)
}
