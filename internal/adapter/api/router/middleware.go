package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"ecofinds/internal/adapter/api/middleware"
)

// ProductImagesPath is the multipart upload route registered by SetupProductRouter.
const ProductImagesPath = "/api/products/images"

// UseMiddleware installs the global middleware stack. Request bodies are capped
// at bodyLimit, image uploads at uploadBodyLimit.
func UseMiddleware(e *echo.Echo, clientOrigins []string, bodyLimit, uploadBodyLimit string) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     clientOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(middleware.NewBodyLimit(bodyLimit, uploadBodyLimit, ProductImagesPath))
}
