package v1

import (
	"github.com/gin-gonic/gin"

	"worklink/services/messaging-api/internal/interfaces/httpserver/handlers"
)

func registerAttachmentRoutes(router gin.IRoutes, handler *handlers.AttachmentHandler) {
	router.POST("/attachments", handler.Upload)
	router.GET("/attachments/:attachment_id", handler.Get)
	router.GET("/attachments/:attachment_id/download", handler.Download)
}
