package router

import (
	"trailtrade/internal/adapter/api/handler"
	"trailtrade/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.Use(middleware.AuthRateLimit())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	auth.POST("/logout", authHandler.Logout, authMiddleware.Authenticate)
}
