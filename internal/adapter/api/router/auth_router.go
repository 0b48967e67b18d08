package router

import (
	"github.com/labstack/echo/v4"

	"ecofinds/internal/adapter/api/handler"
	"ecofinds/internal/adapter/api/middleware"
)

func SetupAuthRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, rateLimit echo.MiddlewareFunc) {
	authHandler := handler.GetAuthHandler()

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, rateLimit)
	auth.POST("/login", authHandler.Login, rateLimit)
	auth.POST("/logout", authHandler.Logout, authMiddleware.Authenticate)
	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}
