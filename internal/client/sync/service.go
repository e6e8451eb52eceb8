// Package sync реализует сверку локального состояния watchlist с
// удаленным сервером: pull с попарным сравнением векторных часов,
// детерминированное слияние конкурентных правок и опустошение outbox.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpClient "github.com/filmoteka/watchsync/internal/client/api"
	"github.com/filmoteka/watchsync/internal/client/broadcast"
	"github.com/filmoteka/watchsync/internal/client/storage"
	"github.com/filmoteka/watchsync/internal/crdt"
	"github.com/filmoteka/watchsync/internal/models"
	"github.com/filmoteka/watchsync/pkg/api"
)

//go:generate go tool moq -out service_mock.go . Service

// Service определяет интерфейс движка синхронизации
type Service interface {
	// Reconcile выполняет полный проход сверки с сервером
	Reconcile(ctx context.Context, userID string) (*Result, error)

	// PendingCount возвращает количество операций, ожидающих
	// подтверждения сервера
	PendingCount(ctx context.Context) (int, error)
}

// service reconciles local state with the remote authority
type service struct {
	apiClient httpClient.ClientAPI
	storage   storage.WatchlistStorage
	metadata  storage.MetadataStorage
	bus       broadcast.Broadcaster
	policy    MergePolicy
	logger    *slog.Logger
}

// NewService creates a new sync service. policy == nil means
// PreferLocalEdits.
func NewService(
	apiClient httpClient.ClientAPI,
	st storage.WatchlistStorage,
	metadata storage.MetadataStorage,
	bus broadcast.Broadcaster,
	policy MergePolicy,
	logger *slog.Logger,
) Service {
	if policy == nil {
		policy = PreferLocalEdits
	}
	return &service{
		apiClient: apiClient,
		storage:   st,
		metadata:  metadata,
		bus:       bus,
		policy:    policy,
		logger:    logger,
	}
}

// Result contains reconciliation counters for one pass
type Result struct {
	Adopted     int // записей принято с сервера (локально не существовали)
	Overwritten int // локально устаревших записей перезаписано серверными
	Conflicts   int // конкурентных правок разрешено слиянием
	Pushed      int // операций outbox отправлено на сервер
	Drained     int // операций outbox удалено как подтвержденные
	Rejected    int // push'ей отклонено сервером (устаревшая версия)
}

// Reconcile performs one full reconciliation pass:
// 1. Pulls the authoritative item set and merges it per vector clock.
// 2. Drains the outbox: acknowledged entries are removed, the rest are
// pushed; a rejected push stays queued as a cue to re-pull next pass.
// Reconcile идемпотентен; каждое решение по записи атомарно само по
// себе, поэтому сбой посреди прохода оставляет уже обработанные записи
// корректно слитыми.
func (s *service) Reconcile(ctx context.Context, userID string) (*Result, error) {
	s.logger.Info("Starting reconciliation", "user_id", userID)

	remote, err := s.apiClient.FetchUserItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote items: %w", err)
	}

	result := &Result{}

	// Шаг 1: pull и слияние
	conflicts, err := s.pullRemote(ctx, remote, result)
	if err != nil {
		return nil, err
	}

	// Шаг 2: опустошение outbox
	if err := s.drainOutbox(ctx, remote, result); err != nil {
		return nil, err
	}

	// Каждый конкурентный случай отдается коллаборатору одним событием
	if len(conflicts) > 0 {
		if err := s.bus.PublishConflicts(ctx, conflicts); err != nil {
			s.logger.Warn("failed to broadcast conflicts", "error", err)
		}
	}

	s.logger.Info("Reconciliation completed",
		"adopted", result.Adopted,
		"overwritten", result.Overwritten,
		"conflicts", result.Conflicts,
		"pushed", result.Pushed,
		"drained", result.Drained,
		"rejected", result.Rejected)

	// Отметка успешной сверки, best effort
	if err := s.metadata.SaveLastSyncAt(ctx, time.Now()); err != nil {
		s.logger.Warn("failed to save last sync time", "error", err)
	}

	return result, nil
}

// pullRemote сравнивает каждую серверную запись с локальной по векторным
// часам и применяет решение: adopt, overwrite, skip или merge.
func (s *service) pullRemote(ctx context.Context, remote []api.Item, result *Result) ([]*models.WatchlistItem, error) {
	var conflicts []*models.WatchlistItem

	for _, remoteItem := range remote {
		local, err := s.storage.GetItem(ctx, remoteItem.ID)
		if err != nil {
			if !errors.Is(err, storage.ErrItemNotFound) {
				return nil, fmt.Errorf("failed to get local item: %w", err)
			}
			// Запись создана на другой, полностью
			// синхронизированной реплике — принимаем как есть
			if err := s.storage.SaveItem(ctx, itemFromAPI(remoteItem)); err != nil {
				return nil, fmt.Errorf("failed to adopt remote item: %w", err)
			}
			result.Adopted++
			continue
		}

		switch crdt.Compare(local.VectorClock, crdt.Clock(remoteItem.VectorClock)) {
		case crdt.Before:
			// Локальная версия строго устарела
			if err := s.storage.SaveItem(ctx, itemFromAPI(remoteItem)); err != nil {
				return nil, fmt.Errorf("failed to overwrite stale item: %w", err)
			}
			result.Overwritten++

		case crdt.After, crdt.Equal:
			// Локальная версия уже отражает или опережает серверную;
			// она уйдет на сервер через outbox, pull её не трогает

		case crdt.Concurrent:
			merged, err := s.mergeConflict(ctx, local, remoteItem)
			if err != nil {
				return nil, err
			}
			conflicts = append(conflicts, merged)
			result.Conflicts++
		}
	}

	return conflicts, nil
}

// mergeConflict разрешает конкурентные версии одной записи. Слияние —
// новое локальное событие относительно сервера: результат пишется
// локально и ставится в outbox для push'а обратно.
func (s *service) mergeConflict(ctx context.Context, local *models.WatchlistItem, remoteItem api.Item) (*models.WatchlistItem, error) {
	remote := itemFromAPI(remoteItem)

	merged := s.policy(local, remote)
	merged.VectorClock = crdt.Merge(local.VectorClock, remote.VectorClock)
	if remote.UpdatedAt.After(local.UpdatedAt) {
		merged.UpdatedAt = remote.UpdatedAt
	} else {
		merged.UpdatedAt = local.UpdatedAt
	}
	// Версия должна расти строго, и push принимается сервером только
	// с версией новее серверной
	merged.SyncVersion = max(local.SyncVersion, remote.SyncVersion) + 1

	if err := s.storage.SaveItemWithPending(ctx, merged, models.OpUpdate); err != nil {
		return nil, fmt.Errorf("failed to save merged item: %w", err)
	}

	s.logger.Debug("Resolved concurrent edit",
		"item_id", merged.ID,
		"merged_clock", merged.VectorClock)

	return merged, nil
}

// drainOutbox удаляет подтвержденные сервером операции и отправляет
// остальные. Опустошение at-least-once: повторный push уже принятой
// версии безвреден, так как сервер выполняет идемпотентный upsert по id
// с монотонно растущей sync_version.
func (s *service) drainOutbox(ctx context.Context, remote []api.Item, result *Result) error {
	acked := make(map[string]int64, len(remote))
	for _, item := range remote {
		acked[item.ID] = item.SyncVersion
	}

	pending, err := s.storage.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending operations: %w", err)
	}

	for _, op := range pending {
		// Сервер уже хранит версию не ниже снимка — push не нужен
		if version, ok := acked[op.Item.ID]; ok && version >= op.Item.SyncVersion {
			if err := s.deletePending(ctx, op.ID); err != nil {
				return err
			}
			result.Drained++
			continue
		}

		resp, err := s.apiClient.PushItem(ctx, itemToAPI(op.Item))
		if err != nil {
			if errors.Is(err, httpClient.ErrRejected) {
				// Сервер хранит более новую версию: запись останется
				// в очереди, следующий проход сделает pull заново
				s.logger.Warn("push rejected by authority",
					"item_id", op.Item.ID,
					"sync_version", op.Item.SyncVersion)
				result.Rejected++
				continue
			}
			// Транспортный сбой: прекращаем отправку, очередь
			// сохраняется до следующего прохода
			return fmt.Errorf("failed to push item: %w", err)
		}

		result.Pushed++
		if resp.Accepted || resp.SyncVersion >= op.Item.SyncVersion {
			if err := s.deletePending(ctx, op.ID); err != nil {
				return err
			}
			result.Drained++
		}
	}

	return nil
}

// deletePending удаляет запись outbox, терпимо к гонке двух проходов
func (s *service) deletePending(ctx context.Context, id string) error {
	if err := s.storage.DeletePending(ctx, id); err != nil {
		if errors.Is(err, storage.ErrPendingNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete pending operation: %w", err)
	}
	return nil
}

// PendingCount возвращает количество операций, ожидающих подтверждения
func (s *service) PendingCount(ctx context.Context) (int, error) {
	pending, err := s.storage.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending operations: %w", err)
	}
	return len(pending), nil
}
