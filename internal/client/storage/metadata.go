package storage

import (
	"context"
	"time"
)

//go:generate go tool moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines storage for per-installation replication metadata.
type MetadataStorage interface {
	// GetReplicaID retrieves the persisted replica identity.
	// Returns ErrReplicaIDNotFound on first use.
	GetReplicaID(ctx context.Context) (string, error)

	// SaveReplicaID persists the replica identity. Written once per
	// installation and never regenerated afterwards.
	SaveReplicaID(ctx context.Context, id string) error

	// GetLastSyncAt retrieves the time of the last successful reconciliation.
	// Returns the zero time if no reconciliation has completed yet.
	GetLastSyncAt(ctx context.Context) (time.Time, error)

	// SaveLastSyncAt persists the time of the last successful reconciliation.
	SaveLastSyncAt(ctx context.Context, t time.Time) error
}
