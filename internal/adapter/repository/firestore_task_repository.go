package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bantuin/internal/domain/entity"
	"bantuin/internal/domain/repository"
	"bantuin/pkg/errors"
)

type firestoreTaskRepository struct {
	client *firestore.Client
}

func NewFirestoreTaskRepository(client *firestore.Client) repository.TaskRepository {
	return &firestoreTaskRepository{
		client: client,
	}
}

func (r *firestoreTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	task.Version = 1

	_, err := r.client.Collection("tasks").Doc(task.ID).Set(ctx, task)
	if err != nil {
		return errors.Internal("Failed to create task", err)
	}

	return nil
}

func (r *firestoreTaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	doc, err := r.client.Collection("tasks").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Task", err)
		}
		return nil, errors.Internal("Failed to get task", err)
	}

	var task entity.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, errors.Internal("Failed to parse task data", err)
	}

	return &task, nil
}

// ConditionalUpdate commits a transition only while the stored version still
// equals expectedVersion. The read-compare-write runs inside a Firestore
// transaction, so two racing transitions resolve to exactly one commit; the
// loser gets VERSION_CONFLICT and must re-fetch.
func (r *firestoreTaskRepository) ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, task *entity.Task) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("tasks").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Task", err)
			}
			return err
		}

		var current entity.Task
		if err := doc.DataTo(&current); err != nil {
			return err
		}

		if current.Version != expectedVersion {
			return errors.VersionConflict("Task")
		}

		task.Version = expectedVersion + 1
		task.UpdatedAt = time.Now()

		return tx.Set(docRef, task)
	})

	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return err
		}
		return errors.Internal("Failed to update task", err)
	}

	return nil
}

func (r *firestoreTaskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("tasks").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete task", err)
	}

	return nil
}

func (r *firestoreTaskRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Task, int64, error) {
	collection := r.client.Collection("tasks")
	query := collection.OrderBy("createdAt", firestore.Desc)

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count tasks", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var tasks []*entity.Task

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate tasks", err)
		}

		var task entity.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, 0, errors.Internal("Failed to parse task data", err)
		}
		tasks = append(tasks, &task)
	}

	return tasks, total, nil
}

func (r *firestoreTaskRepository) ListByUserID(ctx context.Context, userID string, role string, taskStatus string, limit, offset int) ([]*entity.Task, int64, error) {
	var field string
	if role == "creator" {
		field = "creatorId"
	} else if role == "helper" {
		field = "helperId"
	} else {
		return nil, 0, errors.BadRequest("Invalid role", nil)
	}

	query := r.client.Collection("tasks").Where(field, "==", userID)

	if taskStatus != "" {
		query = query.Where("status", "==", taskStatus)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count tasks", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var tasks []*entity.Task

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate tasks", err)
		}

		var task entity.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, 0, errors.Internal("Failed to parse task data", err)
		}
		tasks = append(tasks, &task)
	}

	return tasks, total, nil
}

func (r *firestoreTaskRepository) CountActiveByHelperID(ctx context.Context, helperID string) (int, error) {
	count := 0

	for _, active := range []string{entity.TaskStatusAccepted, entity.TaskStatusInProgress} {
		query := r.client.Collection("tasks").
			Where("helperId", "==", helperID).
			Where("status", "==", active)

		docs, err := query.Documents(ctx).GetAll()
		if err != nil {
			return 0, errors.Internal("Failed to count active tasks", err)
		}
		count += len(docs)
	}

	return count, nil
}

func (r *firestoreTaskRepository) CreateLog(ctx context.Context, log *entity.TaskLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	log.CreatedAt = time.Now()

	_, err := r.client.Collection("task_logs").Doc(log.ID).Set(ctx, log)
	if err != nil {
		return errors.Internal("Failed to create task log", err)
	}

	return nil
}

func (r *firestoreTaskRepository) ListLogsByTaskID(ctx context.Context, taskID string) ([]*entity.TaskLog, error) {
	query := r.client.Collection("task_logs").
		Where("taskId", "==", taskID).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var logs []*entity.TaskLog

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate task logs", err)
		}

		var log entity.TaskLog
		if err := doc.DataTo(&log); err != nil {
			return nil, errors.Internal("Failed to parse task log data", err)
		}
		logs = append(logs, &log)
	}

	return logs, nil
}
