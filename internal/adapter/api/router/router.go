package router

import (
	"github.com/labstack/echo/v4"

	"ecofinds/internal/adapter/api/middleware"
)

// Setup mounts every route. Handlers must be initialised with handler.Setup and
// handler.SetupHealthHandler first.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authRateLimit echo.MiddlewareFunc) {
	SetupHealthRouter(e)

	api := e.Group("/api")
	SetupAuthRouter(api, authMiddleware, authRateLimit)
	SetupCategoryRouter(api)
	SetupProductRouter(api, authMiddleware)
	SetupCartRouter(api, authMiddleware)
	SetupOrderRouter(api, authMiddleware)
	SetupUserRouter(api, authMiddleware)
}
