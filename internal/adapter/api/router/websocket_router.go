package router

import (
	"bantuin/internal/adapter/api/handler"
	"bantuin/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupWebSocketRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	wsHandler := handler.GetWebSocketHandler()

	e.GET("/v1/ws/notifications", wsHandler.HandleNotifications, authMiddleware.Authenticate)
}
