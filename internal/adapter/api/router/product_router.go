package router

import (
	"github.com/labstack/echo/v4"

	"ecofinds/internal/adapter/api/handler"
	"ecofinds/internal/adapter/api/middleware"
)

func SetupProductRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()
	imageHandler := handler.GetImageHandler()
	auth := authMiddleware.Authenticate

	products := api.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	products.GET("/mine", productHandler.ListMyProducts, auth)
	products.POST("", productHandler.CreateProduct, auth)
	products.PUT("/:id", productHandler.UpdateProduct, auth)
	products.DELETE("/:id", productHandler.DeleteProduct, auth)
	products.POST("/images", imageHandler.UploadProductImage, auth)
}
