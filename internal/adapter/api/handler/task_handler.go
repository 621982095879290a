package handler

import (
	"github.com/labstack/echo/v4"

	"bantuin/internal/usecase"
	"bantuin/pkg/errors"
	"bantuin/pkg/response"
	"bantuin/pkg/utils"
)

type TaskHandler struct {
	taskUseCase *usecase.TaskUseCase
}

func NewTaskHandler(taskUseCase *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
	}
}

type createTaskRequest struct {
	Kind         string  `json:"kind" validate:"required,oneof=task wish"`
	Title        string  `json:"title" validate:"required,min=3"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category" validate:"required"`
	City         string  `json:"city" validate:"required"`
	Locality     string  `json:"locality,omitempty"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	IsNegotiable bool    `json:"is_negotiable"`
}

func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	task, err := h.taskUseCase.CreateTask(c.Request().Context(), userID, usecase.CreateTaskInput{
		Kind:         req.Kind,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		City:         req.City,
		Locality:     req.Locality,
		Price:        req.Price,
		IsNegotiable: req.IsNegotiable,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, task)
}

func (h *TaskHandler) GetTask(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	task, err := h.taskUseCase.GetTaskByID(c.Request().Context(), taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) ListTasks(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	filter := make(map[string]interface{})
	for _, key := range []string{"kind", "status", "category", "city", "locality"} {
		if value := c.QueryParam(key); value != "" {
			filter[key] = value
		}
	}

	tasks, total, err := h.taskUseCase.ListTasks(c.Request().Context(), filter, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, tasks, total, pagination.Page, pagination.PageSize)
}

func (h *TaskHandler) ListMyTasks(c echo.Context) error {
	role := c.QueryParam("role") // "creator" or "helper"
	status := c.QueryParam("status")

	pagination := utils.GetPaginationParams(c)
	userID := c.Get("uid").(string)

	tasks, total, err := h.taskUseCase.ListMyTasks(
		c.Request().Context(),
		userID,
		role,
		status,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, tasks, total, pagination.Page, pagination.PageSize)
}

type proposeOfferRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *TaskHandler) ProposeOffer(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	var req proposeOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	task, err := h.taskUseCase.ProposeOffer(c.Request().Context(), userID, taskID, req.Amount)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) Accept(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	task, err := h.taskUseCase.Accept(c.Request().Context(), userID, taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) Start(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	task, err := h.taskUseCase.Start(c.Request().Context(), userID, taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) Cancel(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	task, err := h.taskUseCase.Cancel(c.Request().Context(), userID, taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) ConfirmComplete(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	result, err := h.taskUseCase.ConfirmComplete(c.Request().Context(), userID, taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *TaskHandler) UndoComplete(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	task, err := h.taskUseCase.UndoComplete(c.Request().Context(), userID, taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) DeleteTask(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	if err := h.taskUseCase.DeleteTask(c.Request().Context(), userID, taskID); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

func (h *TaskHandler) GetTaskLogs(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	logs, err := h.taskUseCase.GetTaskLogs(c.Request().Context(), userID, taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, logs)
}

func (h *TaskHandler) ListAdminTasks(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	adminID := c.Get("uid").(string)

	filter := make(map[string]interface{})
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	tasks, total, err := h.taskUseCase.ListAdminTasks(
		c.Request().Context(),
		adminID,
		filter,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, tasks, total, pagination.Page, pagination.PageSize)
}

type closeTaskRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *TaskHandler) CloseTask(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	var req closeTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	task, err := h.taskUseCase.Close(c.Request().Context(), adminID, taskID, req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}
