package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/filmoteka/watchsync/internal/client/storage"
	"github.com/filmoteka/watchsync/internal/models"
)

// Compile-time check that Storage implements WatchlistStorage
var _ storage.WatchlistStorage = (*Storage)(nil)

// GetItem retrieves an item by id, including tombstones
func (s *Storage) GetItem(ctx context.Context, id string) (*models.WatchlistItem, error) {
	var item *models.WatchlistItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWatchlist)
		if bucket == nil {
			return fmt.Errorf("watchlist bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrItemNotFound
		}

		item = &models.WatchlistItem{}
		if err := json.Unmarshal(data, item); err != nil {
			return fmt.Errorf("failed to unmarshal item: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	return item, nil
}

// GetItemByMovie returns the first non-deleted item for (userID, movieID).
// Tombstones остаются в индексе, но наружу не отдаются.
func (s *Storage) GetItemByMovie(ctx context.Context, userID, movieID string) (*models.WatchlistItem, error) {
	var found *models.WatchlistItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWatchlist)
		if bucket == nil {
			return fmt.Errorf("watchlist bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			if found != nil {
				return nil
			}
			item := &models.WatchlistItem{}
			if err := json.Unmarshal(v, item); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}
			if item.UserID == userID && item.MovieID == movieID && !item.IsDeleted {
				found = item
			}
			return nil
		})
	})
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	if found == nil {
		return nil, storage.ErrItemNotFound
	}

	return found, nil
}

// GetItemByMovieIncludingDeleted returns the record for (userID, movieID)
// whether tombstoned or not
func (s *Storage) GetItemByMovieIncludingDeleted(ctx context.Context, userID, movieID string) (*models.WatchlistItem, error) {
	var found *models.WatchlistItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWatchlist)
		if bucket == nil {
			return fmt.Errorf("watchlist bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			if found != nil {
				return nil
			}
			item := &models.WatchlistItem{}
			if err := json.Unmarshal(v, item); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}
			if item.UserID == userID && item.MovieID == movieID {
				found = item
			}
			return nil
		})
	})
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	if found == nil {
		return nil, storage.ErrItemNotFound
	}

	return found, nil
}

// SaveItem stores or replaces an item wholesale
func (s *Storage) SaveItem(ctx context.Context, item *models.WatchlistItem) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return putItem(tx, item)
	})
	return wrapStorageErr(err)
}

// SaveItemWithPending stores the item and enqueues an outbox entry in one
// transaction: либо обе записи видны после коммита, либо ни одной.
func (s *Storage) SaveItemWithPending(ctx context.Context, item *models.WatchlistItem, op models.OperationType) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := putItem(tx, item); err != nil {
			return err
		}

		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return fmt.Errorf("pending bucket not found")
		}

		// Ключ outbox — монотонная последовательность bucket'а,
		// zero-padded, чтобы байтовый порядок ключей совпадал с порядком
		// постановки в очередь.
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get outbox sequence: %w", err)
		}

		pending := &models.PendingOperation{
			ID:         fmt.Sprintf("%020d", seq),
			Operation:  op,
			Item:       item.Clone(),
			EnqueuedAt: time.Now(),
		}

		data, err := json.Marshal(pending)
		if err != nil {
			return fmt.Errorf("failed to marshal pending operation: %w", err)
		}

		if err := bucket.Put([]byte(pending.ID), data); err != nil {
			return fmt.Errorf("failed to save pending operation: %w", err)
		}

		return nil
	})
	return wrapStorageErr(err)
}

// ListItems returns all non-tombstoned items of the user
func (s *Storage) ListItems(ctx context.Context, userID string) ([]*models.WatchlistItem, error) {
	var items []*models.WatchlistItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWatchlist)
		if bucket == nil {
			return fmt.Errorf("watchlist bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			item := &models.WatchlistItem{}
			if err := json.Unmarshal(v, item); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}
			if item.UserID == userID && !item.IsDeleted {
				items = append(items, item)
			}
			return nil
		})
	})
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	return items, nil
}

// ListPending returns all outbox entries in enqueue order
func (s *Storage) ListPending(ctx context.Context) ([]*models.PendingOperation, error) {
	var pending []*models.PendingOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return fmt.Errorf("pending bucket not found")
		}

		// ForEach обходит ключи в байтовом порядке, который для
		// zero-padded последовательности совпадает с порядком enqueue.
		return bucket.ForEach(func(k, v []byte) error {
			op := &models.PendingOperation{}
			if err := json.Unmarshal(v, op); err != nil {
				return fmt.Errorf("failed to unmarshal pending operation: %w", err)
			}
			pending = append(pending, op)
			return nil
		})
	})
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	return pending, nil
}

// DeletePending removes an outbox entry
func (s *Storage) DeletePending(ctx context.Context, id string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return fmt.Errorf("pending bucket not found")
		}

		if bucket.Get([]byte(id)) == nil {
			return storage.ErrPendingNotFound
		}

		return bucket.Delete([]byte(id))
	})
	return wrapStorageErr(err)
}

// putItem сохраняет запись внутри открытой транзакции
func putItem(tx *bbolt.Tx, item *models.WatchlistItem) error {
	bucket := tx.Bucket(bucketWatchlist)
	if bucket == nil {
		return fmt.Errorf("watchlist bucket not found")
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	if err := bucket.Put([]byte(item.ID), data); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	return nil
}

// wrapStorageErr помечает ошибки драйвера как ErrStorageUnavailable,
// пропуская sentinel-ошибки пакета storage без изменений.
func wrapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrItemNotFound) ||
		errors.Is(err, storage.ErrPendingNotFound) ||
		errors.Is(err, storage.ErrReplicaIDNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
}
