package models

import (
	"time"

	"github.com/filmoteka/watchsync/internal/crdt"
)

// WatchlistItem представляет одну запись watchlist в локальном хранилище
// и на сервере. Записи никогда не удаляются физически: удаление выражается
// флагом IsDeleted (tombstone), чтобы причинная история сохранялась для
// будущих сравнений векторных часов.
type WatchlistItem struct {
	AddedAt       time.Time  `json:"added_at"`       // AddedAt время первого добавления фильма
	UpdatedAt     time.Time  `json:"updated_at"`     // UpdatedAt время последней локальной мутации
	WatchedAt     *time.Time `json:"watched_at"`     // WatchedAt не nil тогда и только тогда, когда Watched = true
	VectorClock   crdt.Clock `json:"vector_clock"`   // VectorClock причинная история записи по репликам
	ID            string     `json:"id"`             // ID стабильный идентификатор записи (UUID)
	UserID        string     `json:"user_id"`        // UserID владелец записи
	MovieID       string     `json:"movie_id"`       // MovieID уникален среди неудаленных записей пользователя
	Notes         string     `json:"notes"`          // Notes пользовательская заметка (может быть пустой)
	OriginReplica string     `json:"origin_replica"` // OriginReplica реплика, последней записавшая эту версию
	Priority      int        `json:"priority"`       // Priority пользовательский приоритет, по умолчанию 0
	SyncVersion   int64      `json:"sync_version"`   // SyncVersion растет ровно на 1 при каждой локальной мутации
	Watched       bool       `json:"watched"`        // Watched флаг просмотра
	IsDeleted     bool       `json:"is_deleted"`     // IsDeleted tombstone, запись скрыта, но хранится
}

// Clone создает глубокую копию записи, включая векторные часы.
func (i *WatchlistItem) Clone() *WatchlistItem {
	out := *i
	out.VectorClock = i.VectorClock.Clone()
	if i.WatchedAt != nil {
		t := *i.WatchedAt
		out.WatchedAt = &t
	}
	return &out
}

// OperationType тип операции в outbox
type OperationType string

const (
	OpAdd    OperationType = "add"
	OpUpdate OperationType = "update"
	OpDelete OperationType = "delete"
)

// PendingOperation представляет запись outbox: локальную мутацию, еще не
// подтвержденную сервером. Item хранит полный снимок записи на момент
// мутации. Запись удаляется из outbox только после того, как сервер
// надежно принял sync_version не ниже версии снимка.
type PendingOperation struct {
	EnqueuedAt time.Time      `json:"enqueued_at"`
	Item       *WatchlistItem `json:"item"`
	ID         string         `json:"id"`
	Operation  OperationType  `json:"operation"`
}

// ItemUpdate описывает частичное обновление записи. Поля со значением nil
// не изменяются. Изменение Watched поддерживает инвариант WatchedAt:
// true выставляет время просмотра, false сбрасывает его.
type ItemUpdate struct {
	Notes    *string
	Priority *int
	Watched  *bool
}

// Apply накладывает частичное обновление на запись, поддерживая
// инвариант WatchedAt. Запись изменяется на месте.
func (u ItemUpdate) Apply(item *WatchlistItem, now time.Time) {
	if u.Notes != nil {
		item.Notes = *u.Notes
	}
	if u.Priority != nil {
		item.Priority = *u.Priority
	}
	if u.Watched != nil {
		item.Watched = *u.Watched
		if *u.Watched {
			t := now
			item.WatchedAt = &t
		} else {
			item.WatchedAt = nil
		}
	}
}
