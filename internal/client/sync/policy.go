package sync

import (
	"github.com/filmoteka/watchsync/internal/models"
)

// MergePolicy разрешает конфликт двух конкурентных версий одной записи
// (ни одна причинная история не содержит другую). Политика выбирает
// только значения полей; слитые векторные часы, sync_version и
// updated_at выставляет сам движок синхронизации. Политика обязана быть
// детерминированной для данной пары версий: повторный проход
// синхронизации с тем же входом дает тот же результат.
type MergePolicy func(local, remote *models.WatchlistItem) *models.WatchlistItem

// PreferLocalEdits — политика по умолчанию: структурной базой служит
// удаленная копия, но пользовательские поля (notes, priority, watched,
// watched_at) берутся из локальной. Пользователь не теряет правки,
// сделанные на этом устройстве.
func PreferLocalEdits(local, remote *models.WatchlistItem) *models.WatchlistItem {
	merged := remote.Clone()
	merged.Notes = local.Notes
	merged.Priority = local.Priority
	merged.Watched = local.Watched
	if local.WatchedAt != nil {
		t := *local.WatchedAt
		merged.WatchedAt = &t
	} else {
		merged.WatchedAt = nil
	}
	return merged
}

// LastWriterWins — альтернативная политика: пользовательские поля
// берутся целиком со стороны с более поздним updated_at. При равных
// метках выигрывает локальная сторона, чтобы выбор оставался
// детерминированным на данной реплике.
func LastWriterWins(local, remote *models.WatchlistItem) *models.WatchlistItem {
	if remote.UpdatedAt.After(local.UpdatedAt) {
		return remote.Clone()
	}
	return PreferLocalEdits(local, remote)
}
