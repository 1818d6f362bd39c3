package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Cancel)
	}

	admin := g.Group("/admin/bookings")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.AdminList)
		admin.PUT("/:id/status", h.AdminSetStatus)
	}
}
