package router

import (
	"github.com/labstack/echo/v4"

	"ecofinds/internal/adapter/api/handler"
	"ecofinds/internal/adapter/api/middleware"
)

func SetupOrderRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := api.Group("/orders", authMiddleware.Authenticate)
	orders.POST("/checkout", orderHandler.Checkout)
	orders.GET("", orderHandler.ListOrders)
	orders.GET("/purchases", orderHandler.ListPurchases)
	orders.GET("/:id", orderHandler.GetOrder)
}
