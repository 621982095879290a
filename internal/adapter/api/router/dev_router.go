package router

import (
	"bantuin/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

// SetupDevRouter registers local-development endpoints. Never mounted in
// production.
func SetupDevRouter(e *echo.Echo) {
	devTokenHandler := handler.GetDevTokenHandler()

	dev := e.Group("/v1/dev")
	dev.POST("/token", devTokenHandler.GenerateToken)
}
