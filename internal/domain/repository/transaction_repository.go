package repository

import (
	"context"

	"trailtrade/internal/domain/entity"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetByChatID(ctx context.Context, chatID string) (*entity.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
}
