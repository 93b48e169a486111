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

const transactionNamespace = "transaction-storage"

type BlobTransactionRepository struct {
	store        blobstore.Store
	mu           sync.RWMutex
	transactions []*entity.Transaction
}

func NewBlobTransactionRepository(store blobstore.Store) *BlobTransactionRepository {
	r := &BlobTransactionRepository{store: store}
	r.load()
	return r
}

func (r *BlobTransactionRepository) load() {
	data, err := r.store.Load(context.Background(), transactionNamespace)
	if err != nil {
		if err != blobstore.ErrNotFound {
			logger.Warn("Transaction storage load failed, starting empty: %v", err)
		}
		return
	}
	var transactions []*entity.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		logger.Warn("Transaction storage corrupt, starting empty: %v", err)
		return
	}
	r.transactions = transactions
}

// persist is called with the write lock held.
func (r *BlobTransactionRepository) persist(ctx context.Context) {
	data, err := json.Marshal(r.transactions)
	if err != nil {
		logger.Warn("Transaction storage encode failed: %v", err)
		return
	}
	if err := r.store.Save(ctx, transactionNamespace, data); err != nil {
		logger.Warn("Transaction storage save failed: %v", err)
	}
}

func cloneTransaction(t *entity.Transaction) *entity.Transaction {
	out := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	if t.CancelledAt != nil {
		at := *t.CancelledAt
		out.CancelledAt = &at
	}
	return &out
}

func (r *BlobTransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = append(r.transactions, cloneTransaction(tx))
	r.persist(ctx)
	return nil
}

func (r *BlobTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.transactions {
		if t.ID == id {
			return cloneTransaction(t), nil
		}
	}
	return nil, errors.NotFound("Transaction", nil)
}

// GetByChatID returns the most recent transaction attached to a chat.
func (r *BlobTransactionRepository) GetByChatID(ctx context.Context, chatID string) (*entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.transactions) - 1; i >= 0; i-- {
		if r.transactions[i].ChatID == chatID {
			return cloneTransaction(r.transactions[i]), nil
		}
	}
	return nil, errors.NotFound("Transaction", nil)
}

func (r *BlobTransactionRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Transaction
	for _, t := range r.transactions {
		if t.BuyerID == userID || t.SellerID == userID {
			out = append(out, cloneTransaction(t))
		}
	}
	return out, nil
}

func (r *BlobTransactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.transactions {
		if existing.ID == tx.ID {
			r.transactions[i] = cloneTransaction(tx)
			r.persist(ctx)
			return nil
		}
	}
	return errors.NotFound("Transaction", nil)
}
