package foto

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, handler *Handler) {
	fotos := r.Group("/fotos")
	{
		fotos.POST("", handler.Create)
		fotos.GET("/:id_ficha", handler.ListByFicha)
		fotos.PUT("/:id", handler.Update)
		fotos.DELETE("/:id", handler.Delete)
	}
}
