package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SQLiteBlobRepository struct {
	db *sql.DB
}

func NewSQLiteBlobRepository(db *sql.DB) *SQLiteBlobRepository {
	return &SQLiteBlobRepository{db: db}
}

func (r *SQLiteBlobRepository) Load(ctx context.Context, ownerID, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(
		ctx,
		`SELECT value FROM blobs WHERE owner_id = ? AND key = ?`,
		ownerID,
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load blob %s: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteBlobRepository) Save(ctx context.Context, ownerID, key string, value []byte) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO blobs (owner_id, key, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (owner_id, key) DO UPDATE
		 SET value = excluded.value,
		     updated_at = excluded.updated_at`,
		ownerID,
		key,
		value,
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save blob %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteBlobRepository) ListOwners(ctx context.Context, key string) ([]string, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT owner_id FROM blobs WHERE key = ? ORDER BY owner_id`,
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("list blob owners: %w", err)
	}
	defer rows.Close()

	owners := make([]string, 0)
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scan blob owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blob owners: %w", err)
	}
	return owners, nil
}
