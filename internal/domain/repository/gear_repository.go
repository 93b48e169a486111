package repository

import (
	"context"

	"trailtrade/internal/domain/entity"
)

type GearRepository interface {
	Create(ctx context.Context, item *entity.GearItem) error
	GetByID(ctx context.Context, id string) (*entity.GearItem, error)
	List(ctx context.Context) ([]*entity.GearItem, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.GearItem, error)
	Update(ctx context.Context, item *entity.GearItem) error
	Delete(ctx context.Context, id string) error

	// IncrementStoreFlag bumps the community-report counter and returns the
	// new value. The counter never decrements.
	IncrementStoreFlag(ctx context.Context, id string) (int, error)

	// Filter preferences are part of the gear namespace's persisted state.
	Filter(ctx context.Context) (entity.GearFilter, error)
	SaveFilter(ctx context.Context, filter entity.GearFilter) error
}
