package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	services := g.Group("/services")
	{
		// Browsing the catalog needs no session.
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)

		// Catalog management is admin only.
		services.POST("", authMiddleware, adminMiddleware, h.CreateService)
		services.PATCH("/:id", authMiddleware, adminMiddleware, h.UpdateService)
		services.DELETE("/:id", authMiddleware, adminMiddleware, h.DeleteService)
	}

	providers := g.Group("/providers")
	{
		providers.GET("", h.ListProviders)
		providers.GET("/:id", h.GetProvider)

		providers.POST("", authMiddleware, adminMiddleware, h.CreateProvider)
		providers.PATCH("/:id", authMiddleware, adminMiddleware, h.UpdateProvider)
		providers.DELETE("/:id", authMiddleware, adminMiddleware, h.DeleteProvider)
	}
}
