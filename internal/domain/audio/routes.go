package audio

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, handler *Handler) {
	audios := r.Group("/audios")
	{
		audios.POST("", handler.Save)
		audios.GET("/:id_ficha", handler.Get)
	}
}
