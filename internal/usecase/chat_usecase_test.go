package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bantuin/internal/domain/entity"
	"bantuin/pkg/errors"
)

func TestEnsureTaskThreadCreatesOnce(t *testing.T) {
	chatRepo := newMemoryChatRepo()
	uc := NewChatUseCase(chatRepo, newMemoryUserRepo())
	ctx := context.Background()

	seed := entity.ThreadSeed{TaskID: "task-1", CreatorID: "creator", HelperID: "helper", Price: 500}

	first, err := uc.EnsureTaskThread(ctx, seed)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"creator", "helper"}, first.Participants)

	// the system seed message is written exactly once
	messages, _, err := chatRepo.ListMessagesByChat(ctx, first.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "system", messages[0].Type)

	second, err := uc.EnsureTaskThread(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	messages, _, err = chatRepo.ListMessagesByChat(ctx, first.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestEnsureTaskThreadAddsNewHelperOnReuse(t *testing.T) {
	chatRepo := newMemoryChatRepo()
	uc := NewChatUseCase(chatRepo, newMemoryUserRepo())
	ctx := context.Background()

	_, err := uc.EnsureTaskThread(ctx, entity.ThreadSeed{TaskID: "task-1", CreatorID: "creator", HelperID: "helper-a", Price: 500})
	require.NoError(t, err)

	chat, err := uc.EnsureTaskThread(ctx, entity.ThreadSeed{TaskID: "task-1", CreatorID: "creator", HelperID: "helper-b", Price: 500})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"creator", "helper-a", "helper-b"}, chat.Participants)
	assert.Equal(t, "helper-b", chat.HelperID)
}

func TestSendMessageRequiresParticipation(t *testing.T) {
	chatRepo := newMemoryChatRepo()
	uc := NewChatUseCase(chatRepo, newMemoryUserRepo())
	ctx := context.Background()

	chat, err := uc.EnsureTaskThread(ctx, entity.ThreadSeed{TaskID: "task-1", CreatorID: "creator", HelperID: "helper", Price: 500})
	require.NoError(t, err)

	message, err := uc.SendMessage(ctx, "helper", chat.ID, "On my way")
	require.NoError(t, err)
	assert.Equal(t, "text", message.Type)

	updated, err := chatRepo.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "On my way", updated.LastMessage)

	_, err = uc.SendMessage(ctx, "stranger", chat.ID, "hello")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.SendMessage(ctx, "helper", chat.ID, "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListMessagesRequiresParticipation(t *testing.T) {
	chatRepo := newMemoryChatRepo()
	uc := NewChatUseCase(chatRepo, newMemoryUserRepo())
	ctx := context.Background()

	chat, err := uc.EnsureTaskThread(ctx, entity.ThreadSeed{TaskID: "task-1", CreatorID: "creator", HelperID: "helper", Price: 500})
	require.NoError(t, err)

	_, _, err = uc.ListMessages(ctx, "creator", chat.ID, 1, 20)
	assert.NoError(t, err)

	_, _, err = uc.ListMessages(ctx, "stranger", chat.ID, 1, 20)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
