package router

import (
	"trailtrade/internal/adapter/api/handler"
	"trailtrade/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupTransactionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	transactionHandler := handler.GetTransactionHandler()

	transactions := e.Group("/v1/transactions")
	transactions.Use(authMiddleware.Authenticate)

	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("/deposit", transactionHandler.PlaceDeposit)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.POST("/:id/complete", transactionHandler.CompleteTransaction)
	transactions.POST("/:id/cancel", transactionHandler.CancelTransaction)
}
