package storage

import "errors"

// Common storage errors
var (
	// ErrItemNotFound indicates that watchlist item was not found
	ErrItemNotFound = errors.New("watchlist item not found")

	// ErrPendingNotFound indicates that outbox entry was not found
	ErrPendingNotFound = errors.New("pending operation not found")

	// ErrReplicaIDNotFound indicates that no replica identity has been persisted yet
	ErrReplicaIDNotFound = errors.New("replica id not found")

	// ErrStorageUnavailable indicates that a durable read or write failed.
	// Mutations must abort wholly on this error: no in-memory state is
	// advanced, no outbox entry is created.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
