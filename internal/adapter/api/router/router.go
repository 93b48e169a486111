package router

import (
	"trailtrade/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupGearRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupTransactionRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
