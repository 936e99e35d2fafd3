package ficha

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, handler *Handler) {
	fichas := r.Group("/fichas")
	{
		fichas.GET("", handler.List)
		fichas.POST("", handler.Create)
		fichas.PUT("/:id", handler.Update)
		fichas.DELETE("/:id", handler.Delete)
	}
}
