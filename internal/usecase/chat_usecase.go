package usecase

import (
	"context"
	"fmt"
	"time"

	"bantuin/internal/domain/entity"
	"bantuin/internal/domain/repository"
	"bantuin/pkg/errors"
	"bantuin/pkg/utils"
)

// ChatUseCase owns conversation threads. Only thread creation is triggered
// by the lifecycle; message transport and delivery live in the messaging
// clients.
type ChatUseCase struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

func NewChatUseCase(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// EnsureTaskThread creates the task's conversation thread, or reuses the
// existing one so a cancel/re-accept cycle keeps its history. The new
// participant is added on reuse.
func (uc *ChatUseCase) EnsureTaskThread(ctx context.Context, seed entity.ThreadSeed) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByTaskID(ctx, seed.TaskID)
	if err == nil {
		if !containsParticipant(chat.Participants, seed.HelperID) {
			chat.Participants = append(chat.Participants, seed.HelperID)
			chat.HelperID = seed.HelperID
			if err := uc.chatRepo.Update(ctx, chat); err != nil {
				return nil, err
			}
		}
		return chat, nil
	}

	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	chat = &entity.Chat{
		TaskID:        seed.TaskID,
		Participants:  []string{seed.CreatorID, seed.HelperID},
		CreatorID:     seed.CreatorID,
		HelperID:      seed.HelperID,
		LastMessageAt: time.Now(),
	}

	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	message := &entity.Message{
		ChatID:  chat.ID,
		Type:    "system",
		Content: fmt.Sprintf("Conversation started for this task at price %.0f", seed.Price),
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return chat, nil
}

func (uc *ChatUseCase) GetThreadByTaskID(ctx context.Context, taskID string) (*entity.Chat, error) {
	return uc.chatRepo.GetByTaskID(ctx, taskID)
}

func (uc *ChatUseCase) ListThreads(ctx context.Context, userID string, page, limit int) ([]*entity.Chat, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.chatRepo.ListByUserID(ctx, userID, pagination.PageSize, pagination.Offset)
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID string, page, limit int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if !containsParticipant(chat.Participants, userID) {
		return nil, 0, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.chatRepo.ListMessagesByChat(ctx, chatID, pagination.PageSize, pagination.Offset)
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, chatID, content string) (*entity.Message, error) {
	if content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !containsParticipant(chat.Participants, userID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: userID,
		Type:     "text",
		Content:  content,
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	chat.LastMessage = content
	chat.LastMessageAt = message.CreatedAt
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return nil, err
	}

	return message, nil
}

func containsParticipant(participants []string, userID string) bool {
	for _, p := range participants {
		if p == userID {
			return true
		}
	}
	return false
}
