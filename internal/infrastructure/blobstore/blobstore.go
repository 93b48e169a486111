package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no value exists under the key.
// Callers fall back to their default initial state.
var ErrNotFound = errors.New("blobstore: key not found")

// Store is an opaque key-value blob store. Each repository serializes its
// state under a namespace key, loads it at startup and saves on mutation.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
