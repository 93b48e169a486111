package router

import (
	"trailtrade/internal/adapter/api/handler"
	"trailtrade/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("", chatHandler.ListChats)
	chats.POST("", chatHandler.StartChat)
	chats.GET("/unread-count", chatHandler.UnreadCount)
	chats.GET("/:id", chatHandler.GetChat)
	chats.GET("/:id/messages", chatHandler.ListMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.POST("/:id/read", chatHandler.MarkAsRead)
	chats.PUT("/:id/meetup-location", chatHandler.SetMeetupLocation)
}
