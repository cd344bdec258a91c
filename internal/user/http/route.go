package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user-related routes (including auth).
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	meGroup := g.Group("/me")
	meGroup.Use(authMiddleware)
	{
		meGroup.GET("", h.Me)
		meGroup.PATCH("", h.UpdateMe)
		meGroup.POST("/image", h.UploadImage)
	}

	usersGroup := g.Group("/users")
	{
		usersGroup.GET("/:id/image", h.GetImage)
		usersGroup.GET("/:id", authMiddleware, h.Get)
		usersGroup.GET("", authMiddleware, adminMiddleware, h.List)
	}
}
