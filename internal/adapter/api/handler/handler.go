package handler

import (
	"bantuin/internal/usecase"
)

var (
	authHandler *AuthHandler
	userHandler *UserHandler
	taskHandler *TaskHandler
	chatHandler *ChatHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	taskUseCase *usecase.TaskUseCase,
	chatUseCase *usecase.ChatUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	taskHandler = NewTaskHandler(taskUseCase)
	chatHandler = NewChatHandler(chatUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetTaskHandler() *TaskHandler {
	return taskHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}
