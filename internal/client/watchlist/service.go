// Package watchlist реализует локальный путь мутаций реплицируемого
// watchlist: каждая мутация атомарно пишет запись и outbox-entry в
// локальное хранилище, продвигает векторные часы и sync_version,
// рассылает broadcast-событие и запрашивает синхронизацию. Мутации
// завершаются локально и никогда не ждут сети.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/filmoteka/watchsync/internal/client/broadcast"
	"github.com/filmoteka/watchsync/internal/client/storage"
	"github.com/filmoteka/watchsync/internal/crdt"
	"github.com/filmoteka/watchsync/internal/models"
)

// Mutation-path errors, surfaced synchronously to the caller.
var (
	// ErrNotFound indicates that the referenced item does not exist
	ErrNotFound = errors.New("watchlist item not found")

	// ErrAlreadyExists indicates that a live item for the movie already exists
	ErrAlreadyExists = errors.New("movie already in watchlist")
)

// Syncer запрашивает проход синхронизации после локальной мутации.
// Запрос асинхронный: вызов не ждет ни сети, ни завершения прохода.
type Syncer interface {
	Request()
}

// Service определяет API мутаций watchlist для UI-коллабораторов
type Service interface {
	// AddItem adds a movie to the user's watchlist.
	// Returns ErrAlreadyExists if a live item for the movie exists.
	AddItem(ctx context.Context, userID, movieID, notes string) (*models.WatchlistItem, error)

	// UpdateItem applies a partial update to an item.
	// Returns ErrNotFound if the item does not exist.
	UpdateItem(ctx context.Context, id string, upd models.ItemUpdate) (*models.WatchlistItem, error)

	// RemoveItem tombstones an item. No-op if the item is absent or
	// already tombstoned.
	RemoveItem(ctx context.Context, id string) error

	// ListItems returns all live items of the user.
	ListItems(ctx context.Context, userID string) ([]*models.WatchlistItem, error)
}

// service handles the local mutation path of the replication engine
type service struct {
	storage   storage.WatchlistStorage
	bus       broadcast.Broadcaster
	syncer    Syncer
	logger    *slog.Logger
	replicaID string
	mu        sync.Mutex
}

// NewService creates a new watchlist mutation service.
// replicaID — идентичность инсталляции, загруженная один раз при старте.
func NewService(st storage.WatchlistStorage, bus broadcast.Broadcaster, syncer Syncer, replicaID string, logger *slog.Logger) Service {
	return &service{
		storage:   st,
		bus:       bus,
		syncer:    syncer,
		replicaID: replicaID,
		logger:    logger,
	}
}

// AddItem adds a movie to the watchlist. Если по (userID, movieID) есть
// tombstone, запись оживает на месте с прежним id: стабильность id
// переживает циклы delete/re-add.
func (s *service) AddItem(ctx context.Context, userID, movieID, notes string) (*models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Живая запись по этому фильму уже есть?
	if _, err := s.storage.GetItemByMovie(ctx, userID, movieID); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrItemNotFound) {
		return nil, fmt.Errorf("failed to check existing item: %w", err)
	}

	// Ищем tombstone для оживления на месте
	var tombstone *models.WatchlistItem
	if prev, err := s.storage.GetItemByMovieIncludingDeleted(ctx, userID, movieID); err == nil {
		tombstone = prev
	} else if !errors.Is(err, storage.ErrItemNotFound) {
		return nil, fmt.Errorf("failed to check tombstone: %w", err)
	}

	now := time.Now()
	item := &models.WatchlistItem{
		ID:            uuid.New().String(),
		UserID:        userID,
		MovieID:       movieID,
		AddedAt:       now,
		Notes:         notes,
		OriginReplica: s.replicaID,
		VectorClock:   crdt.Increment(nil, s.replicaID),
		SyncVersion:   1,
		UpdatedAt:     now,
	}

	op := models.OpAdd
	if tombstone != nil {
		// Оживление: прежний id, продолженная причинная история
		item.ID = tombstone.ID
		item.VectorClock = crdt.Increment(tombstone.VectorClock, s.replicaID)
		item.SyncVersion = tombstone.SyncVersion + 1
		op = models.OpUpdate
	}

	if err := s.storage.SaveItemWithPending(ctx, item, op); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.afterMutation(ctx, item)
	return item, nil
}

// UpdateItem applies a partial update to an item
func (s *service) UpdateItem(ctx context.Context, id string, upd models.ItemUpdate) (*models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.storage.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	now := time.Now()
	item := existing.Clone()
	upd.Apply(item, now)
	item.VectorClock = crdt.Increment(item.VectorClock, s.replicaID)
	item.SyncVersion++
	item.OriginReplica = s.replicaID
	item.UpdatedAt = now

	if err := s.storage.SaveItemWithPending(ctx, item, models.OpUpdate); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.afterMutation(ctx, item)
	return item, nil
}

// RemoveItem tombstones an item. Запись не удаляется физически: tombstone
// должен дойти до сервера и остальных реплик.
func (s *service) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.storage.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get item: %w", err)
	}
	if existing.IsDeleted {
		return nil
	}

	item := existing.Clone()
	item.IsDeleted = true
	item.VectorClock = crdt.Increment(item.VectorClock, s.replicaID)
	item.SyncVersion++
	item.OriginReplica = s.replicaID
	item.UpdatedAt = time.Now()

	if err := s.storage.SaveItemWithPending(ctx, item, models.OpDelete); err != nil {
		return fmt.Errorf("failed to save tombstone: %w", err)
	}

	s.afterMutation(ctx, item)
	return nil
}

// ListItems returns all live items of the user
func (s *service) ListItems(ctx context.Context, userID string) ([]*models.WatchlistItem, error) {
	items, err := s.storage.ListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// afterMutation выполняет пост-эффекты мутации: broadcast и запрос
// синхронизации. Вызывается только после успешной durable-записи;
// оба эффекта best-effort и не блокируют вызывающего.
func (s *service) afterMutation(ctx context.Context, item *models.WatchlistItem) {
	if err := s.bus.PublishUpdate(ctx, item); err != nil {
		s.logger.Warn("failed to broadcast update", "item_id", item.ID, "error", err)
	}
	s.syncer.Request()
}
