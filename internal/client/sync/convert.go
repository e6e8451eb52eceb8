package sync

import (
	"github.com/filmoteka/watchsync/internal/crdt"
	"github.com/filmoteka/watchsync/internal/models"
	"github.com/filmoteka/watchsync/pkg/api"
)

// itemToAPI конвертирует локальную модель в wire-формат сервера
func itemToAPI(item *models.WatchlistItem) api.Item {
	return api.Item{
		ID:            item.ID,
		UserID:        item.UserID,
		MovieID:       item.MovieID,
		AddedAt:       item.AddedAt,
		Notes:         item.Notes,
		Priority:      item.Priority,
		Watched:       item.Watched,
		WatchedAt:     item.WatchedAt,
		OriginReplica: item.OriginReplica,
		VectorClock:   map[string]int64(item.VectorClock.Clone()),
		SyncVersion:   item.SyncVersion,
		IsDeleted:     item.IsDeleted,
		UpdatedAt:     item.UpdatedAt,
	}
}

// itemFromAPI конвертирует wire-формат сервера в локальную модель
func itemFromAPI(item api.Item) *models.WatchlistItem {
	clock := crdt.Clock(item.VectorClock).Clone()
	return &models.WatchlistItem{
		ID:            item.ID,
		UserID:        item.UserID,
		MovieID:       item.MovieID,
		AddedAt:       item.AddedAt,
		Notes:         item.Notes,
		Priority:      item.Priority,
		Watched:       item.Watched,
		WatchedAt:     item.WatchedAt,
		OriginReplica: item.OriginReplica,
		VectorClock:   clock,
		SyncVersion:   item.SyncVersion,
		IsDeleted:     item.IsDeleted,
		UpdatedAt:     item.UpdatedAt,
	}
}
