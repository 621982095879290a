package router

import (
	"bantuin/internal/adapter/api/handler"
	"bantuin/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupTaskRouter(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	taskHandler := handler.GetTaskHandler()

	// Browsing is open to everyone; a valid token enriches the context but
	// is not required.
	public := e.Group("/v1/tasks")
	public.Use(authMiddleware.OptionalAuthenticate)
	public.GET("", taskHandler.ListTasks)
	public.GET("/:id", taskHandler.GetTask)

	// Everything that moves a task through its lifecycle requires a caller.
	tasks := e.Group("/v1/tasks")
	tasks.Use(authMiddleware.Authenticate)

	tasks.POST("", taskHandler.CreateTask, rateLimitMiddleware.Limit("create_task"))
	tasks.GET("/mine", taskHandler.ListMyTasks)
	tasks.POST("/:id/offer", taskHandler.ProposeOffer, rateLimitMiddleware.Limit("propose_offer"))
	tasks.POST("/:id/accept", taskHandler.Accept)
	tasks.POST("/:id/start", taskHandler.Start)
	tasks.POST("/:id/cancel", taskHandler.Cancel)
	tasks.POST("/:id/complete", taskHandler.ConfirmComplete)
	tasks.POST("/:id/complete/undo", taskHandler.UndoComplete)
	tasks.DELETE("/:id", taskHandler.DeleteTask)
	tasks.GET("/:id/logs", taskHandler.GetTaskLogs)

	admin := e.Group("/v1/admin/tasks")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("", taskHandler.ListAdminTasks)
	admin.POST("/:id/close", taskHandler.CloseTask)
}
