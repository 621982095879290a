package repository

import (
	"context"

	"bantuin/internal/domain/entity"
)

// TaskRepository is the lifecycle engine's durable store. ConditionalUpdate
// is the only way a transition is committed: the write succeeds only while
// the stored version still equals expectedVersion, and fails with
// VERSION_CONFLICT otherwise. Callers then re-fetch and re-evaluate.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, task *entity.Task) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Task, int64, error)
	ListByUserID(ctx context.Context, userID string, role string, status string, limit, offset int) ([]*entity.Task, int64, error)
	CountActiveByHelperID(ctx context.Context, helperID string) (int, error)

	CreateLog(ctx context.Context, log *entity.TaskLog) error
	ListLogsByTaskID(ctx context.Context, taskID string) ([]*entity.TaskLog, error)
}
