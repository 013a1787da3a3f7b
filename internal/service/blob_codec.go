package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"showcase/backend/internal/repository"
)

var errCorruptBlob = errors.New("corrupt blob")

// loadJSON decodes the blob at ownerID/key into dst. It reports false when the
// blob does not exist yet.
func loadJSON(ctx context.Context, blobs repository.BlobRepository, ownerID, key string, dst interface{}) (bool, error) {
	raw, err := blobs.Load(ctx, ownerID, key)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %w", errCorruptBlob, key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, blobs repository.BlobRepository, ownerID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return blobs.Save(ctx, ownerID, key, raw)
}
