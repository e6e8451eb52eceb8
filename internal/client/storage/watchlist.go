package storage

import (
	"context"

	"github.com/filmoteka/watchsync/internal/models"
)

//go:generate go tool moq -out watchlist_mock.go . WatchlistStorage

// WatchlistStorage defines the durable local store for watchlist items and
// the pending-operation outbox. Records survive process restarts; a single
// record write is atomic. Driver failures are reported wrapped in
// ErrStorageUnavailable.
type WatchlistStorage interface {
	// GetItem retrieves an item by id, including tombstones.
	// Returns ErrItemNotFound if no record exists.
	GetItem(ctx context.Context, id string) (*models.WatchlistItem, error)

	// GetItemByMovie returns the first non-deleted item for (userID, movieID).
	// Tombstones are indexed but not surfaced here: if only tombstoned
	// records match, ErrItemNotFound is returned.
	GetItemByMovie(ctx context.Context, userID, movieID string) (*models.WatchlistItem, error)

	// GetItemByMovieIncludingDeleted returns the record for
	// (userID, movieID) whether tombstoned or not. Used by the mutation
	// path to revive a tombstone in place, keeping the item id stable
	// across delete/re-add cycles.
	GetItemByMovieIncludingDeleted(ctx context.Context, userID, movieID string) (*models.WatchlistItem, error)

	// SaveItem stores or replaces an item wholesale (idempotent upsert by id).
	SaveItem(ctx context.Context, item *models.WatchlistItem) error

	// SaveItemWithPending stores the item and enqueues an outbox entry for it
	// in one transaction. Either both writes commit or neither does.
	SaveItemWithPending(ctx context.Context, item *models.WatchlistItem, op models.OperationType) error

	// ListItems returns all non-tombstoned items of the user, order unspecified.
	ListItems(ctx context.Context, userID string) ([]*models.WatchlistItem, error)

	// ListPending returns all outbox entries in enqueue order.
	ListPending(ctx context.Context) ([]*models.PendingOperation, error)

	// DeletePending removes an outbox entry after the server acknowledged it.
	DeletePending(ctx context.Context, id string) error

	// Close releases the underlying database.
	Close() error
}
