package repository

import (
	"context"

	"trailtrade/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)

	// GetByKey looks a thread up by its identity triple.
	GetByKey(ctx context.Context, gearID, buyerID, sellerID string) (*entity.Chat, error)

	ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error)

	// Update replaces the stored thread wholesale, messages included.
	// Concurrent updates to the same thread are last-write-wins.
	Update(ctx context.Context, chat *entity.Chat) error
}
