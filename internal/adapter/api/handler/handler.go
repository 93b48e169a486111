package handler

import (
	"trailtrade/internal/usecase"
)

var (
	authHandler        *AuthHandler
	userHandler        *UserHandler
	gearHandler        *GearHandler
	chatHandler        *ChatHandler
	transactionHandler *TransactionHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	gearUseCase *usecase.GearUseCase,
	chatUseCase *usecase.ChatUseCase,
	transactionUseCase *usecase.TransactionUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(authUseCase)
	gearHandler = NewGearHandler(gearUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	transactionHandler = NewTransactionHandler(transactionUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetGearHandler() *GearHandler {
	return gearHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetTransactionHandler() *TransactionHandler {
	return transactionHandler
}
