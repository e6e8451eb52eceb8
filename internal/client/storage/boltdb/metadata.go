package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/filmoteka/watchsync/internal/client/storage"
)

var (
	keyReplicaID  = []byte("replica_id")
	keyLastSyncAt = []byte("last_sync_at")
)

// Compile-time check that Storage implements MetadataStorage
var _ storage.MetadataStorage = (*Storage)(nil)

// GetReplicaID retrieves the persisted replica identity
func (s *Storage) GetReplicaID(ctx context.Context) (string, error) {
	var id string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		data := bucket.Get(keyReplicaID)
		if data == nil {
			return storage.ErrReplicaIDNotFound
		}

		id = string(data)
		return nil
	})
	if err != nil {
		return "", wrapStorageErr(err)
	}

	return id, nil
}

// SaveReplicaID persists the replica identity
func (s *Storage) SaveReplicaID(ctx context.Context, id string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		return bucket.Put(keyReplicaID, []byte(id))
	})
	return wrapStorageErr(err)
}

// GetLastSyncAt retrieves the time of the last successful reconciliation.
// Возвращает нулевое время, если синхронизация еще не выполнялась.
func (s *Storage) GetLastSyncAt(ctx context.Context) (time.Time, error) {
	var last time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		data := bucket.Get(keyLastSyncAt)
		if data == nil {
			return nil
		}

		return last.UnmarshalText(data)
	})
	if err != nil {
		return time.Time{}, wrapStorageErr(err)
	}

	return last, nil
}

// SaveLastSyncAt persists the time of the last successful reconciliation
func (s *Storage) SaveLastSyncAt(ctx context.Context, t time.Time) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		data, err := t.MarshalText()
		if err != nil {
			return fmt.Errorf("failed to marshal timestamp: %w", err)
		}

		return bucket.Put(keyLastSyncAt, data)
	})
	return wrapStorageErr(err)
}
