package valkey

import (
	"context"
	"errors"
)

// SnapshotKey holds the serialized emergency ring. The Cache prepends the
// service namespace.
const SnapshotKey = "emergencies:snapshot"

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetPersistent(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SnapshotStore implements ports.SnapshotStore on top of a Cache.
// The ring is small (≤50 cases) so it is written wholesale, no TTL.
type SnapshotStore struct {
	kv  kvStore
	key string
}

// NewSnapshotStore wraps a Cache as a snapshot store.
func NewSnapshotStore(cache *Cache) *SnapshotStore {
	return &SnapshotStore{kv: cache, key: SnapshotKey}
}

// Load returns the stored blob. A missing key is an empty store, not an error.
func (s *SnapshotStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save overwrites the blob.
func (s *SnapshotStore) Save(ctx context.Context, data []byte) error {
	return s.kv.SetPersistent(ctx, s.key, data)
}

// Clear removes the blob.
func (s *SnapshotStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
