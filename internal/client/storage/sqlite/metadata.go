package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/filmoteka/watchsync/internal/client/storage"
)

const (
	metaKeyReplicaID  = "replica_id"
	metaKeyLastSyncAt = "last_sync_at"
)

// Compile-time check that Storage implements MetadataStorage
var _ storage.MetadataStorage = (*Storage)(nil)

// GetReplicaID retrieves the persisted replica identity
func (s *Storage) GetReplicaID(ctx context.Context) (string, error) {
	id, err := s.getMeta(ctx, metaKeyReplicaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrReplicaIDNotFound
		}
		return "", fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}
	return id, nil
}

// SaveReplicaID persists the replica identity
func (s *Storage) SaveReplicaID(ctx context.Context, id string) error {
	return s.setMeta(ctx, metaKeyReplicaID, id)
}

// GetLastSyncAt retrieves the time of the last successful reconciliation.
// Возвращает нулевое время, если синхронизация еще не выполнялась.
func (s *Storage) GetLastSyncAt(ctx context.Context) (time.Time, error) {
	value, err := s.getMeta(ctx, metaKeyLastSyncAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	var last time.Time
	if err := last.UnmarshalText([]byte(value)); err != nil {
		return time.Time{}, fmt.Errorf("%w: failed to parse timestamp: %w", storage.ErrStorageUnavailable, err)
	}

	return last, nil
}

// SaveLastSyncAt persists the time of the last successful reconciliation
func (s *Storage) SaveLastSyncAt(ctx context.Context, t time.Time) error {
	data, err := t.MarshalText()
	if err != nil {
		return fmt.Errorf("%w: failed to marshal timestamp: %w", storage.ErrStorageUnavailable, err)
	}
	return s.setMeta(ctx, metaKeyLastSyncAt, string(data))
}

func (s *Storage) getMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM sync_meta WHERE key = ?`, key).Scan(&value)
	return value, err
}

func (s *Storage) setMeta(ctx context.Context, key, value string) error {
	query := `INSERT INTO sync_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}
	return nil
}
