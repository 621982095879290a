package router

import (
	"bantuin/internal/adapter/api/middleware"
	"bantuin/pkg/config"

	"github.com/labstack/echo/v4"
)

func Setup(
	e *echo.Echo,
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	SetupAuthRouter(e)
	SetupUserRouter(e, authMiddleware)
	SetupTaskRouter(e, authMiddleware, adminMiddleware, rateLimitMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupWebSocketRouter(e, authMiddleware)
	SetupHealthRouter(e)

	if cfg.Environment != "production" {
		SetupDevRouter(e)
	}
}
