package repository

import "context"

// BlobRepository is durable per-account key-value storage. Values are opaque;
// callers own their encoding.
type BlobRepository interface {
	Load(ctx context.Context, ownerID, key string) ([]byte, error)
	Save(ctx context.Context, ownerID, key string, value []byte) error
	ListOwners(ctx context.Context, key string) ([]string, error)
}

// Slot binds a BlobRepository to one owner and key so consumers only see
// Load/Save of a single snapshot.
type Slot struct {
	repo    BlobRepository
	ownerID string
	key     string
}

func NewSlot(repo BlobRepository, ownerID, key string) *Slot {
	return &Slot{repo: repo, ownerID: ownerID, key: key}
}

func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	return s.repo.Load(ctx, s.ownerID, s.key)
}

func (s *Slot) Save(ctx context.Context, value []byte) error {
	return s.repo.Save(ctx, s.ownerID, s.key, value)
}
