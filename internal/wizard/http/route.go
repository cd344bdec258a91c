package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/wizard")

	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.POST("/:id/service", h.SelectService)
		group.POST("/:id/provider", h.SelectProvider)
		group.POST("/:id/schedule", h.SelectSchedule)
		group.POST("/:id/next", h.Next)
		group.POST("/:id/back", h.Back)
		group.GET("/:id/providers", h.Providers)
		group.GET("/:id/slots", h.Slots)
		group.POST("/:id/submit", h.Submit)
	}
}
