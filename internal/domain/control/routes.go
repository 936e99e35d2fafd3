package control

import "github.com/gin-gonic/gin"

// RegisterRoutes registers control routes
func RegisterRoutes(r gin.IRouter, handler *Handler) {
	controles := r.Group("/controles")
	{
		controles.POST("", handler.Create)
		controles.GET("", handler.List)
		controles.PUT("/:id", handler.Update)
		controles.DELETE("/:id", handler.Delete)
	}
}
