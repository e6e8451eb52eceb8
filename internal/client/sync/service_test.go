package sync

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/filmoteka/watchsync/internal/client/api"
	"github.com/filmoteka/watchsync/internal/client/broadcast"
	"github.com/filmoteka/watchsync/internal/client/storage"
	"github.com/filmoteka/watchsync/internal/crdt"
	"github.com/filmoteka/watchsync/internal/models"
	"github.com/filmoteka/watchsync/pkg/api"
)

// syncFixture собирает сервис синхронизации поверх моков с общим
// состоянием: items изображает локальное хранилище, pending — outbox.
type syncFixture struct {
	apiMock   *httpClient.ClientAPIMock
	stMock    *storage.WatchlistStorageMock
	metaMock  *storage.MetadataStorageMock
	busMock   *broadcast.BroadcasterMock
	svc       Service
	items     map[string]*models.WatchlistItem
	pending   []*models.PendingOperation
	pushed    []api.Item
	conflicts [][]*models.WatchlistItem
}

func newSyncFixture(t *testing.T, remote []api.Item) *syncFixture {
	t.Helper()

	f := &syncFixture{
		items: make(map[string]*models.WatchlistItem),
	}

	f.apiMock = &httpClient.ClientAPIMock{
		FetchUserItemsFunc: func(ctx context.Context, userID string) ([]api.Item, error) {
			return remote, nil
		},
		PushItemFunc: func(ctx context.Context, item api.Item) (*api.PushResponse, error) {
			f.pushed = append(f.pushed, item)
			return &api.PushResponse{Accepted: true, SyncVersion: item.SyncVersion}, nil
		},
	}

	f.stMock = &storage.WatchlistStorageMock{
		GetItemFunc: func(ctx context.Context, id string) (*models.WatchlistItem, error) {
			item, ok := f.items[id]
			if !ok {
				return nil, storage.ErrItemNotFound
			}
			return item.Clone(), nil
		},
		SaveItemFunc: func(ctx context.Context, item *models.WatchlistItem) error {
			f.items[item.ID] = item.Clone()
			return nil
		},
		SaveItemWithPendingFunc: func(ctx context.Context, item *models.WatchlistItem, op models.OperationType) error {
			f.items[item.ID] = item.Clone()
			f.pending = append(f.pending, &models.PendingOperation{
				ID:         time.Now().Format("20060102150405.000000000"),
				Operation:  op,
				Item:       item.Clone(),
				EnqueuedAt: time.Now(),
			})
			return nil
		},
		ListPendingFunc: func(ctx context.Context) ([]*models.PendingOperation, error) {
			out := make([]*models.PendingOperation, len(f.pending))
			copy(out, f.pending)
			return out, nil
		},
		DeletePendingFunc: func(ctx context.Context, id string) error {
			for i, op := range f.pending {
				if op.ID == id {
					f.pending = append(f.pending[:i], f.pending[i+1:]...)
					return nil
				}
			}
			return storage.ErrPendingNotFound
		},
	}

	f.metaMock = &storage.MetadataStorageMock{
		SaveLastSyncAtFunc: func(ctx context.Context, tm time.Time) error {
			return nil
		},
	}

	f.busMock = &broadcast.BroadcasterMock{
		PublishConflictsFunc: func(ctx context.Context, items []*models.WatchlistItem) error {
			f.conflicts = append(f.conflicts, items)
			return nil
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(f.apiMock, f.stMock, f.metaMock, f.busMock, nil, logger)
	return f
}

// seedLocal кладет запись в локальное хранилище фикстуры
func (f *syncFixture) seedLocal(item *models.WatchlistItem) {
	f.items[item.ID] = item.Clone()
}

// enqueue ставит снимок записи в outbox фикстуры
func (f *syncFixture) enqueue(id string, item *models.WatchlistItem) {
	f.pending = append(f.pending, &models.PendingOperation{
		ID:         id,
		Operation:  models.OpUpdate,
		Item:       item.Clone(),
		EnqueuedAt: time.Now(),
	})
}

func remoteItem(id string, clock map[string]int64, version int64) api.Item {
	return api.Item{
		ID:          id,
		UserID:      "user-1",
		MovieID:     "movie-" + id,
		Notes:       "remote notes",
		Priority:    1,
		VectorClock: clock,
		SyncVersion: version,
		AddedAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func localItem(id string, clock crdt.Clock, version int64) *models.WatchlistItem {
	return &models.WatchlistItem{
		ID:          id,
		UserID:      "user-1",
		MovieID:     "movie-" + id,
		Notes:       "local notes",
		Priority:    5,
		VectorClock: clock,
		SyncVersion: version,
		AddedAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Reconcile_AdoptsUnknownRemote(t *testing.T) {
	remote := remoteItem("item-1", map[string]int64{"B": 1}, 1)
	f := newSyncFixture(t, []api.Item{remote})

	result, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Adopted)
	assert.Zero(t, result.Overwritten)
	assert.Zero(t, result.Conflicts)

	// Запись принята дословно, без постановки в outbox
	adopted := f.items["item-1"]
	require.NotNil(t, adopted)
	assert.Equal(t, "remote notes", adopted.Notes)
	assert.Equal(t, crdt.Clock{"B": 1}, adopted.VectorClock)
	assert.Empty(t, f.pending)
}

func TestService_Reconcile_OverwritesStaleLocal(t *testing.T) {
	remote := remoteItem("item-1", map[string]int64{"A": 1, "B": 1}, 2)
	f := newSyncFixture(t, []api.Item{remote})
	f.seedLocal(localItem("item-1", crdt.Clock{"A": 1}, 1))

	result, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Overwritten)
	assert.Zero(t, result.Conflicts)

	// Устаревшая локальная версия заменена серверной дословно
	got := f.items["item-1"]
	assert.Equal(t, "remote notes", got.Notes)
	assert.Equal(t, 1, got.Priority)
	assert.Equal(t, crdt.Clock{"A": 1, "B": 1}, got.VectorClock)
	assert.Equal(t, int64(2), got.SyncVersion)
}

func TestService_Reconcile_SkipsWhenLocalAhead(t *testing.T) {
	tests := []struct {
		name       string
		localClock crdt.Clock
	}{
		{name: "local strictly after", localClock: crdt.Clock{"A": 2, "B": 1}},
		{name: "clocks equal", localClock: crdt.Clock{"A": 1, "B": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := remoteItem("item-1", map[string]int64{"A": 1, "B": 1}, 2)
			f := newSyncFixture(t, []api.Item{remote})
			f.seedLocal(localItem("item-1", tt.localClock, 3))

			result, err := f.svc.Reconcile(context.Background(), "user-1")
			require.NoError(t, err)

			assert.Zero(t, result.Overwritten)
			assert.Zero(t, result.Conflicts)

			// Локальная версия не тронута
			assert.Equal(t, "local notes", f.items["item-1"].Notes)
			assert.Equal(t, tt.localClock, f.items["item-1"].VectorClock)
		})
	}
}

func TestService_Reconcile_MergesConcurrentEdit(t *testing.T) {
	remote := remoteItem("item-1", map[string]int64{"A": 1, "B": 1}, 3)
	f := newSyncFixture(t, []api.Item{remote})
	f.seedLocal(localItem("item-1", crdt.Clock{"A": 2}, 2))

	result, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Conflicts)

	merged := f.items["item-1"]
	require.NotNil(t, merged)

	// Политика по умолчанию сохраняет локальные правки пользователя
	assert.Equal(t, "local notes", merged.Notes)
	assert.Equal(t, 5, merged.Priority)

	// Часы слиты покомпонентным максимумом
	assert.Equal(t, crdt.Clock{"A": 2, "B": 1}, merged.VectorClock)

	// Версия строго больше обеих сторон
	assert.Equal(t, int64(4), merged.SyncVersion)

	// Слияние — новое локальное событие: оно стоит в outbox
	require.Len(t, f.pending, 1)
	assert.Equal(t, models.OpUpdate, f.pending[0].Operation)
	assert.Equal(t, "item-1", f.pending[0].Item.ID)
}

func TestService_Reconcile_MergeIsDeterministic(t *testing.T) {
	run := func() *models.WatchlistItem {
		remote := remoteItem("item-1", map[string]int64{"A": 1, "B": 1}, 3)
		f := newSyncFixture(t, []api.Item{remote})
		f.seedLocal(localItem("item-1", crdt.Clock{"A": 2}, 2))

		_, err := f.svc.Reconcile(context.Background(), "user-1")
		require.NoError(t, err)
		return f.items["item-1"]
	}

	assert.Equal(t, run(), run())
}

func TestService_Reconcile_SingleConflictsBroadcast(t *testing.T) {
	// Два конкурентных конфликта за один проход — одно событие с обоими
	remote := []api.Item{
		remoteItem("item-1", map[string]int64{"A": 1, "B": 1}, 2),
		remoteItem("item-2", map[string]int64{"A": 1, "B": 2}, 2),
	}
	f := newSyncFixture(t, remote)
	f.seedLocal(localItem("item-1", crdt.Clock{"A": 2}, 2))
	f.seedLocal(localItem("item-2", crdt.Clock{"A": 2}, 2))

	result, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Conflicts)
	require.Len(t, f.conflicts, 1)
	assert.Len(t, f.conflicts[0], 2)
}

func TestService_Reconcile_NoConflictsNoBroadcast(t *testing.T) {
	f := newSyncFixture(t, []api.Item{remoteItem("item-1", map[string]int64{"B": 1}, 1)})

	_, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Empty(t, f.busMock.PublishConflictsCalls())
}

func TestService_Reconcile_DrainsAcknowledgedWithoutPush(t *testing.T) {
	item := localItem("item-1", crdt.Clock{"A": 1}, 1)
	// Сервер уже хранит версию снимка (или новее)
	remote := remoteItem("item-1", map[string]int64{"A": 1}, 1)
	remote.Notes = "local notes"
	remote.Priority = 5

	f := newSyncFixture(t, []api.Item{remote})
	f.seedLocal(item)
	f.enqueue("op-1", item)

	result, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Drained)
	assert.Zero(t, result.Pushed)
	assert.Empty(t, f.pushed)
	assert.Empty(t, f.pending)
}

func TestService_Reconcile_PushesUnacknowledged(t *testing.T) {
	item := localItem("item-1", crdt.Clock{"A": 2}, 2)
	// Сервер хранит только старую версию
	remote := remoteItem("item-1", map[string]int64{"A": 1}, 1)

	f := newSyncFixture(t, []api.Item{remote})
	f.seedLocal(item)
	f.enqueue("op-1", item)

	result, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pushed)
	assert.Equal(t, 1, result.Drained)
	require.Len(t, f.pushed, 1)
	assert.Equal(t, "item-1", f.pushed[0].ID)
	assert.Equal(t, int64(2), f.pushed[0].SyncVersion)
	assert.Empty(t, f.pending)
}

func TestService_Reconcile_RepeatedPassIsIdempotent(t *testing.T) {
	item := localItem("item-1", crdt.Clock{"A": 2}, 2)
	remote := remoteItem("item-1", map[string]int64{"A": 1}, 1)

	f := newSyncFixture(t, []api.Item{remote})
	f.seedLocal(item)
	f.enqueue("op-1", item)

	_, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	// Повторный проход: outbox пуст, push не повторяется
	result, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, result.Pushed)
	assert.Zero(t, result.Drained)
	assert.Len(t, f.pushed, 1)
}

func TestService_Reconcile_RejectedPushStaysQueued(t *testing.T) {
	item := localItem("item-1", crdt.Clock{"A": 2}, 2)
	f := newSyncFixture(t, nil)
	f.seedLocal(item)
	f.enqueue("op-1", item)

	f.apiMock.PushItemFunc = func(ctx context.Context, pushed api.Item) (*api.PushResponse, error) {
		return nil, httpClient.ErrRejected
	}

	result, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	// Отклоненная операция остается в очереди до следующего pull
	assert.Equal(t, 1, result.Rejected)
	assert.Zero(t, result.Drained)
	require.Len(t, f.pending, 1)
	assert.Equal(t, "op-1", f.pending[0].ID)
}

func TestService_Reconcile_TransportFailureKeepsOutbox(t *testing.T) {
	item := localItem("item-1", crdt.Clock{"A": 2}, 2)
	f := newSyncFixture(t, nil)
	f.seedLocal(item)
	f.enqueue("op-1", item)

	f.apiMock.PushItemFunc = func(ctx context.Context, pushed api.Item) (*api.PushResponse, error) {
		return nil, httpClient.ErrUnreachable
	}

	_, err := f.svc.Reconcile(context.Background(), "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpClient.ErrUnreachable)

	// Очередь нетронута, следующий проход повторит отправку
	require.Len(t, f.pending, 1)
}

func TestService_Reconcile_FetchFailure(t *testing.T) {
	f := newSyncFixture(t, nil)
	f.apiMock.FetchUserItemsFunc = func(ctx context.Context, userID string) ([]api.Item, error) {
		return nil, httpClient.ErrUnreachable
	}

	_, err := f.svc.Reconcile(context.Background(), "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpClient.ErrUnreachable)
}

func TestService_Reconcile_AdoptsRemoteTombstone(t *testing.T) {
	remote := remoteItem("item-1", map[string]int64{"A": 1, "B": 2}, 3)
	remote.IsDeleted = true

	f := newSyncFixture(t, []api.Item{remote})
	f.seedLocal(localItem("item-1", crdt.Clock{"A": 1}, 1))

	result, err := f.svc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Overwritten)
	assert.True(t, f.items["item-1"].IsDeleted)
}

func TestService_PendingCount(t *testing.T) {
	f := newSyncFixture(t, nil)
	f.enqueue("op-1", localItem("item-1", crdt.Clock{"A": 1}, 1))
	f.enqueue("op-2", localItem("item-2", crdt.Clock{"A": 2}, 1))

	count, err := f.svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
