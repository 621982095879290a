package repository

import (
	"context"

	"bantuin/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	// GetByTaskID finds the existing thread for a task so accepts after a
	// cancel reuse the conversation instead of opening a new one.
	GetByTaskID(ctx context.Context, taskID string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	Update(ctx context.Context, chat *entity.Chat) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
}
