package usecase

import (
	"context"
	"time"

	"bantuin/internal/domain/entity"
	"bantuin/internal/domain/lifecycle"
	"bantuin/internal/domain/repository"
	"bantuin/pkg/errors"
	"bantuin/pkg/logger"
	"bantuin/pkg/utils"
)

// maxTransitionAttempts bounds the re-fetch-and-re-evaluate loop after a
// version conflict. The loop never retries stale intent: every attempt
// re-reads the task and re-runs the full transition check.
const maxTransitionAttempts = 3

type TaskUseCase struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	chatUseCase *ChatUseCase
	notifier    Notifier

	maxOpenTasks int
}

func NewTaskUseCase(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	chatUseCase *ChatUseCase,
	notifier Notifier,
	maxOpenTasks int,
) *TaskUseCase {
	return &TaskUseCase{
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		chatUseCase:  chatUseCase,
		notifier:     notifier,
		maxOpenTasks: maxOpenTasks,
	}
}

type CreateTaskInput struct {
	Kind         string
	Title        string
	Description  string
	Category     string
	City         string
	Locality     string
	Price        float64
	IsNegotiable bool
}

func (uc *TaskUseCase) CreateTask(ctx context.Context, creatorID string, input CreateTaskInput) (*entity.Task, error) {
	if creatorID == "" {
		return nil, errors.Unauthorized("Sign in to post a task", nil)
	}

	if input.Kind != entity.TaskKindTask && input.Kind != entity.TaskKindWish {
		return nil, errors.BadRequest("Kind must be task or wish", nil)
	}

	if input.Price <= 0 {
		return nil, errors.BadRequest("Price must be positive", nil)
	}

	if uc.maxOpenTasks > 0 {
		_, openCount, err := uc.taskRepo.ListByUserID(ctx, creatorID, "creator", entity.TaskStatusOpen, 1, 0)
		if err != nil {
			return nil, err
		}
		if openCount >= int64(uc.maxOpenTasks) {
			return nil, errors.BadRequest("You have too many open tasks; close or complete some first", nil)
		}
	}

	task := &entity.Task{
		Kind:         input.Kind,
		CreatorID:    creatorID,
		Status:       entity.TaskStatusOpen,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		City:         input.City,
		Locality:     input.Locality,
		Price:        input.Price,
		IsNegotiable: input.IsNegotiable,
	}

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	log := &entity.TaskLog{
		TaskID:    task.ID,
		Status:    task.Status,
		Action:    "create",
		Notes:     "Task created",
		CreatedBy: creatorID,
	}
	if err := uc.taskRepo.CreateLog(ctx, log); err != nil {
		logger.LogFollowUpError(task.ID, "create_log", err)
	}

	return task, nil
}

func (uc *TaskUseCase) GetTaskByID(ctx context.Context, taskID string) (*entity.Task, error) {
	return uc.taskRepo.GetByID(ctx, taskID)
}

func (uc *TaskUseCase) ListTasks(ctx context.Context, filter map[string]interface{}, page, limit int) ([]*entity.Task, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.taskRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
}

func (uc *TaskUseCase) ListMyTasks(ctx context.Context, userID, role, taskStatus string, page, limit int) ([]*entity.Task, int64, error) {
	if role != "creator" && role != "helper" {
		role = "creator"
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.taskRepo.ListByUserID(ctx, userID, role, taskStatus, pagination.PageSize, pagination.Offset)
}

// ProposeOffer records a counter-offer and moves the task to negotiating.
func (uc *TaskUseCase) ProposeOffer(ctx context.Context, actorID, taskID string, amount float64) (*entity.Task, error) {
	task, _, err := uc.applyTransition(ctx, taskID, lifecycle.Request{
		Action:  lifecycle.ActionProposeOffer,
		ActorID: actorID,
		Amount:  amount,
		Now:     time.Now(),
	})
	return task, err
}

// Accept claims the task exclusively for the acting helper.
func (uc *TaskUseCase) Accept(ctx context.Context, actorID, taskID string) (*entity.Task, error) {
	// A helper holds at most one active claim at a time
	active, err := uc.taskRepo.CountActiveByHelperID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, errors.BadRequest("You are already helping with another task", nil)
	}

	task, _, err := uc.applyTransition(ctx, taskID, lifecycle.Request{
		Action:  lifecycle.ActionAccept,
		ActorID: actorID,
		Now:     time.Now(),
	})
	return task, err
}

func (uc *TaskUseCase) Start(ctx context.Context, actorID, taskID string) (*entity.Task, error) {
	task, _, err := uc.applyTransition(ctx, taskID, lifecycle.Request{
		Action:  lifecycle.ActionStart,
		ActorID: actorID,
		Now:     time.Now(),
	})
	return task, err
}

// Cancel releases the claim and returns the task to open. Available to both
// involved parties at any point before completion.
func (uc *TaskUseCase) Cancel(ctx context.Context, actorID, taskID string) (*entity.Task, error) {
	task, _, err := uc.applyTransition(ctx, taskID, lifecycle.Request{
		Action:  lifecycle.ActionCancel,
		ActorID: actorID,
		Now:     time.Now(),
	})
	return task, err
}

type CompletionResult struct {
	Task    *entity.Task      `json:"task"`
	Outcome lifecycle.Outcome `json:"outcome"`
}

func (uc *TaskUseCase) ConfirmComplete(ctx context.Context, actorID, taskID string) (*CompletionResult, error) {
	task, outcome, err := uc.applyTransition(ctx, taskID, lifecycle.Request{
		Action:  lifecycle.ActionConfirmComplete,
		ActorID: actorID,
		Now:     time.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &CompletionResult{Task: task, Outcome: outcome}, nil
}

func (uc *TaskUseCase) UndoComplete(ctx context.Context, actorID, taskID string) (*entity.Task, error) {
	task, _, err := uc.applyTransition(ctx, taskID, lifecycle.Request{
		Action:  lifecycle.ActionUndoComplete,
		ActorID: actorID,
		Now:     time.Now(),
	})
	return task, err
}

// Close is the administrative terminal transition.
func (uc *TaskUseCase) Close(ctx context.Context, adminID, taskID, reason string) (*entity.Task, error) {
	user, err := uc.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, errors.NotFound("Admin user", err)
	}

	if user.Role != "admin" {
		return nil, errors.Forbidden("Only admin can close a task", nil)
	}

	task, _, err := uc.applyTransition(ctx, taskID, lifecycle.Request{
		Action:  lifecycle.ActionClose,
		ActorID: adminID,
		Admin:   true,
		Reason:  reason,
		Now:     time.Now(),
	})
	return task, err
}

// DeleteTask removes an open, unreferenced task. A claimed task has to be
// cancelled first, and a task with a conversation thread is kept for the
// thread's sake.
func (uc *TaskUseCase) DeleteTask(ctx context.Context, actorID, taskID string) error {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	role := lifecycle.Resolve(*task, actorID)
	if role == lifecycle.RoleAnonymous {
		return errors.Unauthorized("Sign in to delete a task", nil)
	}
	if role != lifecycle.RoleCreator {
		return errors.Forbidden("Only the creator can delete this task", nil)
	}

	if task.Status != entity.TaskStatusOpen {
		return errors.InvalidTransition(task.Status, "delete")
	}

	if _, err := uc.chatUseCase.GetThreadByTaskID(ctx, taskID); err == nil {
		return errors.BadRequest("A task with a conversation cannot be deleted", nil)
	} else if !errors.Is(err, "NOT_FOUND") {
		return err
	}

	return uc.taskRepo.Delete(ctx, taskID)
}

func (uc *TaskUseCase) GetTaskLogs(ctx context.Context, actorID, taskID string) ([]*entity.TaskLog, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	role := lifecycle.Resolve(*task, actorID)
	if !role.Involved() {
		return nil, errors.Forbidden("You don't have permission to view this task's history", nil)
	}

	logs, err := uc.taskRepo.ListLogsByTaskID(ctx, taskID)
	if err != nil {
		return nil, errors.Internal("Failed to get task logs", err)
	}

	return logs, nil
}

func (uc *TaskUseCase) ListAdminTasks(ctx context.Context, adminID string, filter map[string]interface{}, page, limit int) ([]*entity.Task, int64, error) {
	user, err := uc.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, 0, errors.NotFound("Admin user", err)
	}

	if user.Role != "admin" {
		return nil, 0, errors.Forbidden("Only admin can access this resource", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.taskRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
}

// applyTransition runs the fetch → transition → conditional-write cycle. A
// VERSION_CONFLICT from the store means another actor committed in between:
// the intent is re-checked from scratch against the fresh state, so a lost
// accept race surfaces as ALREADY_CLAIMED rather than a blind retry.
func (uc *TaskUseCase) applyTransition(ctx context.Context, taskID string, req lifecycle.Request) (*entity.Task, lifecycle.Outcome, error) {
	var lastErr error

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		task, err := uc.taskRepo.GetByID(ctx, taskID)
		if err != nil {
			return nil, "", err
		}

		result, err := lifecycle.Transition(*task, req)
		if err != nil {
			return nil, "", err
		}

		if err := uc.taskRepo.ConditionalUpdate(ctx, task.ID, task.Version, &result.Task); err != nil {
			if errors.Is(err, "VERSION_CONFLICT") {
				lastErr = err
				continue
			}
			return nil, "", err
		}

		uc.afterTransition(ctx, &result.Task, req)
		return &result.Task, result.Outcome, nil
	}

	return nil, "", lastErr
}

// afterTransition runs the fire-and-forget follow-ups for a committed
// transition. None of them may fail the transition itself.
func (uc *TaskUseCase) afterTransition(ctx context.Context, task *entity.Task, req lifecycle.Request) {
	log := &entity.TaskLog{
		TaskID:    task.ID,
		Status:    task.Status,
		Action:    string(req.Action),
		Notes:     req.Reason,
		CreatedBy: req.ActorID,
	}
	if err := uc.taskRepo.CreateLog(ctx, log); err != nil {
		logger.LogFollowUpError(task.ID, "transition_log", err)
	}

	if req.Action == lifecycle.ActionAccept || req.Action == lifecycle.ActionProposeOffer {
		helperID := task.HelperID
		if helperID == "" {
			// Offer proposers are not helpers yet but already get a thread
			helperID = req.ActorID
		}

		seed := entity.ThreadSeed{
			TaskID:    task.ID,
			CreatorID: task.CreatorID,
			HelperID:  helperID,
			Price:     task.Price,
		}
		if _, err := uc.chatUseCase.EnsureTaskThread(ctx, seed); err != nil {
			logger.LogFollowUpError(task.ID, "ensure_thread", err)
		}
	}

	uc.notifier.NotifyTransition(entity.StatusEvent{
		TaskID:          task.ID,
		NewStatus:       task.Status,
		Action:          string(req.Action),
		ActorID:         req.ActorID,
		InvolvedParties: involvedParties(task, req.ActorID),
		OccurredAt:      time.Now(),
	})
}

func involvedParties(task *entity.Task, actorID string) []string {
	seen := make(map[string]bool)
	var parties []string

	for _, id := range []string{task.CreatorID, task.HelperID, actorID} {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		parties = append(parties, id)
	}

	return parties
}
