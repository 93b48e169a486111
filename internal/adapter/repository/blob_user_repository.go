package repository

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"trailtrade/internal/domain/entity"
	"trailtrade/internal/infrastructure/blobstore"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/logger"
)

const userNamespace = "user-storage"

// storedUser re-attaches the password hash, which the entity hides from its
// JSON form, so credentials survive a reload.
type storedUser struct {
	*entity.User
	PasswordHash string `json:"password_hash"`
}

// BlobUserRepository keeps the user list in memory and mirrors it into the
// blob store on every mutation. A missing or corrupt blob yields an empty
// repository; save failures are logged and never surfaced to callers.
type BlobUserRepository struct {
	store blobstore.Store
	mu    sync.RWMutex
	users []*entity.User
}

func NewBlobUserRepository(store blobstore.Store) *BlobUserRepository {
	r := &BlobUserRepository{store: store}
	r.load()
	return r
}

func (r *BlobUserRepository) load() {
	data, err := r.store.Load(context.Background(), userNamespace)
	if err != nil {
		if err != blobstore.ErrNotFound {
			logger.Warn("User storage load failed, starting empty: %v", err)
		}
		return
	}
	var stored []storedUser
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("User storage corrupt, starting empty: %v", err)
		return
	}
	users := make([]*entity.User, 0, len(stored))
	for _, s := range stored {
		if s.User == nil {
			continue
		}
		u := s.User
		u.PasswordHash = s.PasswordHash
		users = append(users, u)
	}
	r.users = users
}

// persist is called with the write lock held.
func (r *BlobUserRepository) persist(ctx context.Context) {
	stored := make([]storedUser, 0, len(r.users))
	for _, u := range r.users {
		stored = append(stored, storedUser{User: u, PasswordHash: u.PasswordHash})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		logger.Warn("User storage encode failed: %v", err)
		return
	}
	if err := r.store.Save(ctx, userNamespace, data); err != nil {
		logger.Warn("User storage save failed: %v", err)
	}
}

func cloneUser(u *entity.User) *entity.User {
	out := *u
	out.TravelHistory = append([]string(nil), u.TravelHistory...)
	out.Verifications = append([]string(nil), u.Verifications...)
	return &out
}

func (r *BlobUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return errors.Conflict("Email already in use")
		}
	}
	r.users = append(r.users, cloneUser(user))
	r.persist(ctx)
	return nil
}

func (r *BlobUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *BlobUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *BlobUserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = cloneUser(user)
			r.persist(ctx)
			return nil
		}
	}
	return errors.NotFound("User", nil)
}

func (r *BlobUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}
