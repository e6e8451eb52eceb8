// Package identity управляет идентичностью реплики: стабильным
// идентификатором инсталляции, под которым реплика пишет во все свои
// векторные часы. Идентификатор создается один раз при первом запуске,
// сохраняется в локальном хранилище и никогда не генерируется заново.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/filmoteka/watchsync/internal/client/storage"
)

// Ensure loads the persisted replica id, generating and persisting a new
// one on first use. Загружается один раз при старте процесса и дальше
// передается конструкторам; никогда не вычисляется повторно по месту.
func Ensure(ctx context.Context, meta storage.MetadataStorage) (string, error) {
	id, err := meta.GetReplicaID(ctx)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, storage.ErrReplicaIDNotFound) {
		return "", fmt.Errorf("failed to load replica id: %w", err)
	}

	// Первый запуск инсталляции
	id = uuid.New().String()
	if err := meta.SaveReplicaID(ctx, id); err != nil {
		return "", fmt.Errorf("failed to persist replica id: %w", err)
	}

	return id, nil
}
