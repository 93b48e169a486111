package router

import (
	"trailtrade/internal/adapter/api/handler"
	"trailtrade/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.GetMe)
	users.PATCH("/me", userHandler.UpdateMe)
	users.POST("/me/verify/email", userHandler.VerifyEmail)
	users.POST("/me/verify/liveness", userHandler.VerifyLiveness)
	users.POST("/me/verify/social", userHandler.VerifySocial)
	users.POST("/me/location/refresh", userHandler.RefreshLocation)
}
