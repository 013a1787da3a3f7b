package repository

import (
	"context"
	"sort"
	"sync"
)

// MemoryBlobRepository keeps blobs in process memory. Values are copied on the
// way in and out so callers cannot alias stored bytes.
type MemoryBlobRepository struct {
	mu    sync.RWMutex
	blobs map[string]map[string][]byte
}

func NewMemoryBlobRepository() *MemoryBlobRepository {
	return &MemoryBlobRepository{blobs: make(map[string]map[string][]byte)}
}

func (r *MemoryBlobRepository) Load(ctx context.Context, ownerID, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.blobs[ownerID][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *MemoryBlobRepository) Save(ctx context.Context, ownerID, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned, ok := r.blobs[ownerID]
	if !ok {
		owned = make(map[string][]byte)
		r.blobs[ownerID] = owned
	}
	owned[key] = append([]byte(nil), value...)
	return nil
}

func (r *MemoryBlobRepository) ListOwners(ctx context.Context, key string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owners := make([]string, 0)
	for owner, owned := range r.blobs {
		if _, ok := owned[key]; ok {
			owners = append(owners, owner)
		}
	}
	sort.Strings(owners)
	return owners, nil
}
