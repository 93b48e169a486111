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

const chatNamespace = "chat-storage"

type BlobChatRepository struct {
	store blobstore.Store
	mu    sync.RWMutex
	chats []*entity.Chat
}

func NewBlobChatRepository(store blobstore.Store) *BlobChatRepository {
	r := &BlobChatRepository{store: store}
	r.load()
	return r
}

func (r *BlobChatRepository) load() {
	data, err := r.store.Load(context.Background(), chatNamespace)
	if err != nil {
		if err != blobstore.ErrNotFound {
			logger.Warn("Chat storage load failed, starting empty: %v", err)
		}
		return
	}
	var chats []*entity.Chat
	if err := json.Unmarshal(data, &chats); err != nil {
		logger.Warn("Chat storage corrupt, starting empty: %v", err)
		return
	}
	r.chats = chats
}

// persist is called with the write lock held.
func (r *BlobChatRepository) persist(ctx context.Context) {
	data, err := json.Marshal(r.chats)
	if err != nil {
		logger.Warn("Chat storage encode failed: %v", err)
		return
	}
	if err := r.store.Save(ctx, chatNamespace, data); err != nil {
		logger.Warn("Chat storage save failed: %v", err)
	}
}

func cloneChat(c *entity.Chat) *entity.Chat {
	out := *c
	out.Messages = append([]entity.Message(nil), c.Messages...)
	if c.MeetupLocation != nil {
		loc := *c.MeetupLocation
		out.MeetupLocation = &loc
	}
	return &out
}

func (r *BlobChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.chats = append(r.chats, cloneChat(chat))
	r.persist(ctx)
	return nil
}

func (r *BlobChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.chats {
		if c.ID == id {
			return cloneChat(c), nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *BlobChatRepository) GetByKey(ctx context.Context, gearID, buyerID, sellerID string) (*entity.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.chats {
		if c.GearID == gearID && c.BuyerID == buyerID && c.SellerID == sellerID {
			return cloneChat(c), nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *BlobChatRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Chat
	for _, c := range r.chats {
		if c.IsParticipant(userID) {
			out = append(out, cloneChat(c))
		}
	}
	return out, nil
}

func (r *BlobChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.chats {
		if existing.ID == chat.ID {
			r.chats[i] = cloneChat(chat)
			r.persist(ctx)
			return nil
		}
	}
	return errors.NotFound("Chat", nil)
}
