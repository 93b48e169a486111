package repository

import (
	"context"
	"encoding/json"
	"sync"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/infrastructure/blobstore"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/logger"
)

const gearNamespace = "gear-storage"

// gearState is the persisted shape of the gear namespace: the catalog plus
// the saved filter preferences.
type gearState struct {
	Items  []*entity.GearItem `json:"items"`
	Filter entity.GearFilter  `json:"filter"`
}

type BlobGearRepository struct {
	store  blobstore.Store
	mu     sync.RWMutex
	items  []*entity.GearItem
	filter entity.GearFilter
}

func NewBlobGearRepository(store blobstore.Store) *BlobGearRepository {
	r := &BlobGearRepository{store: store}
	r.load()
	return r
}

func (r *BlobGearRepository) load() {
	data, err := r.store.Load(context.Background(), gearNamespace)
	if err != nil {
		if err != blobstore.ErrNotFound {
			logger.Warn("Gear storage load failed, starting empty: %v", err)
		}
		return
	}
	var state gearState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("Gear storage corrupt, starting empty: %v", err)
		return
	}
	r.items = state.Items
	r.filter = state.Filter
}

// persist is called with the write lock held.
func (r *BlobGearRepository) persist(ctx context.Context) {
	data, err := json.Marshal(gearState{Items: r.items, Filter: r.filter})
	if err != nil {
		logger.Warn("Gear storage encode failed: %v", err)
		return
	}
	if err := r.store.Save(ctx, gearNamespace, data); err != nil {
		logger.Warn("Gear storage save failed: %v", err)
	}
}

func cloneGear(g *entity.GearItem) *entity.GearItem {
	out := *g
	out.Images = append([]string(nil), g.Images...)
	out.Tags = append([]string(nil), g.Tags...)
	return &out
}

func (r *BlobGearRepository) Create(ctx context.Context, item *entity.GearItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, cloneGear(item))
	r.persist(ctx)
	return nil
}

func (r *BlobGearRepository) GetByID(ctx context.Context, id string) (*entity.GearItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return cloneGear(item), nil
		}
	}
	return nil, errors.NotFound("Gear item", nil)
}

func (r *BlobGearRepository) List(ctx context.Context) ([]*entity.GearItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.GearItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneGear(item))
	}
	return out, nil
}

func (r *BlobGearRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.GearItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.GearItem
	for _, item := range r.items {
		if item.SellerID == sellerID {
			out = append(out, cloneGear(item))
		}
	}
	return out, nil
}

func (r *BlobGearRepository) Update(ctx context.Context, item *entity.GearItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == item.ID {
			r.items[i] = cloneGear(item)
			r.persist(ctx)
			return nil
		}
	}
	return errors.NotFound("Gear item", nil)
}

func (r *BlobGearRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			r.persist(ctx)
			return nil
		}
	}
	return errors.NotFound("Gear item", nil)
}

func (r *BlobGearRepository) IncrementStoreFlag(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID == id {
			existing.StoreFlagCount++
			r.persist(ctx)
			return existing.StoreFlagCount, nil
		}
	}
	return 0, errors.NotFound("Gear item", nil)
}

func (r *BlobGearRepository) Filter(ctx context.Context) (entity.GearFilter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter, nil
}

func (r *BlobGearRepository) SaveFilter(ctx context.Context, filter entity.GearFilter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = filter
	r.persist(ctx)
	return nil
}
