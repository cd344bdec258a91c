package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	// Public endpoint; no session required.
	g.POST("/contact", h.Send)
}
