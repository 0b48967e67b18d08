package router

import (
	"github.com/labstack/echo/v4"

	"ecofinds/internal/adapter/api/handler"
)

func SetupCategoryRouter(api *echo.Group) {
	categoryHandler := handler.GetCategoryHandler()
	api.GET("/categories", categoryHandler.ListCategories)
}
