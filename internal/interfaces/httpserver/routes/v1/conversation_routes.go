package v1

import (
	"github.com/gin-gonic/gin"

	"worklink/services/messaging-api/internal/interfaces/httpserver/handlers"
)

func registerConversationRoutes(router gin.IRoutes, conv *handlers.ConversationHandler, msg *handlers.MessageHandler) {
	router.POST("/conversations", conv.Open)
	router.GET("/conversations/:conversation_id", conv.Get)
	router.GET("/inbox", conv.Inbox)

	router.POST("/conversations/:conversation_id/messages", msg.Send)
	router.GET("/conversations/:conversation_id/messages", msg.List)
	router.POST("/conversations/:conversation_id/read", msg.MarkRead)
}
