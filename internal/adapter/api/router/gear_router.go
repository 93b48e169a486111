package router

import (
	"trailtrade/internal/adapter/api/handler"
	"trailtrade/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupGearRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	gearHandler := handler.GetGearHandler()

	gear := e.Group("/v1/gear")
	gear.Use(authMiddleware.Authenticate)
	gear.GET("", gearHandler.ListGear)
	gear.GET("/filter", gearHandler.GetFilter)
	gear.PUT("/filter", gearHandler.SaveFilter)
	gear.DELETE("/filter", gearHandler.ClearFilter)
	gear.GET("/:id", gearHandler.GetGear)
	gear.POST("/:id/flag", gearHandler.FlagGear)

	myGear := e.Group("/v1/my-gear")
	myGear.Use(authMiddleware.Authenticate)
	myGear.GET("", gearHandler.ListMyGear)
	myGear.POST("", gearHandler.CreateGear)
	myGear.PUT("/:id", gearHandler.UpdateGear)
	myGear.DELETE("/:id", gearHandler.DeleteGear)
}
