package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteka/watchsync/internal/crdt"
	"github.com/filmoteka/watchsync/internal/models"
)

func makeConcurrentPair() (*models.WatchlistItem, *models.WatchlistItem) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	watchedAt := base.Add(time.Hour)

	local := &models.WatchlistItem{
		ID:            "item-1",
		UserID:        "user-1",
		MovieID:       "movie-42",
		Notes:         "local notes",
		Priority:      5,
		Watched:       true,
		WatchedAt:     &watchedAt,
		VectorClock:   crdt.Clock{"A": 2},
		SyncVersion:   2,
		OriginReplica: "A",
		UpdatedAt:     base.Add(2 * time.Hour),
	}
	remote := &models.WatchlistItem{
		ID:            "item-1",
		UserID:        "user-1",
		MovieID:       "movie-42",
		Notes:         "remote notes",
		Priority:      1,
		VectorClock:   crdt.Clock{"A": 1, "B": 1},
		SyncVersion:   3,
		OriginReplica: "B",
		UpdatedAt:     base.Add(3 * time.Hour),
	}
	return local, remote
}

func TestPreferLocalEdits(t *testing.T) {
	local, remote := makeConcurrentPair()

	merged := PreferLocalEdits(local, remote)

	// Пользовательские поля — локальные
	assert.Equal(t, "local notes", merged.Notes)
	assert.Equal(t, 5, merged.Priority)
	assert.True(t, merged.Watched)
	require.NotNil(t, merged.WatchedAt)
	assert.Equal(t, *local.WatchedAt, *merged.WatchedAt)

	// Структурная база — удаленная
	assert.Equal(t, remote.ID, merged.ID)
	assert.Equal(t, remote.OriginReplica, merged.OriginReplica)
}

func TestPreferLocalEdits_LocalNotWatched(t *testing.T) {
	local, remote := makeConcurrentPair()
	local.Watched = false
	local.WatchedAt = nil
	remoteWatched := time.Now()
	remote.Watched = true
	remote.WatchedAt = &remoteWatched

	merged := PreferLocalEdits(local, remote)

	assert.False(t, merged.Watched)
	assert.Nil(t, merged.WatchedAt)
}

func TestPreferLocalEdits_DoesNotAliasInputs(t *testing.T) {
	local, remote := makeConcurrentPair()

	merged := PreferLocalEdits(local, remote)
	merged.Notes = "changed"
	merged.VectorClock["Z"] = 9
	*merged.WatchedAt = time.Time{}

	assert.Equal(t, "local notes", local.Notes)
	assert.Equal(t, "remote notes", remote.Notes)
	assert.NotContains(t, remote.VectorClock, "Z")
	assert.False(t, local.WatchedAt.IsZero())
}

func TestPreferLocalEdits_Deterministic(t *testing.T) {
	local, remote := makeConcurrentPair()

	first := PreferLocalEdits(local, remote)
	second := PreferLocalEdits(local, remote)

	assert.Equal(t, first, second)
}

func TestLastWriterWins(t *testing.T) {
	t.Run("remote newer takes all fields", func(t *testing.T) {
		local, remote := makeConcurrentPair()
		// remote.UpdatedAt уже позже local.UpdatedAt

		merged := LastWriterWins(local, remote)

		assert.Equal(t, "remote notes", merged.Notes)
		assert.Equal(t, 1, merged.Priority)
		assert.False(t, merged.Watched)
	})

	t.Run("local newer keeps local edits", func(t *testing.T) {
		local, remote := makeConcurrentPair()
		local.UpdatedAt = remote.UpdatedAt.Add(time.Hour)

		merged := LastWriterWins(local, remote)

		assert.Equal(t, "local notes", merged.Notes)
		assert.Equal(t, 5, merged.Priority)
	})

	t.Run("equal timestamps prefer local", func(t *testing.T) {
		local, remote := makeConcurrentPair()
		local.UpdatedAt = remote.UpdatedAt

		merged := LastWriterWins(local, remote)

		assert.Equal(t, "local notes", merged.Notes)
	})
}
