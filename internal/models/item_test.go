package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteka/watchsync/internal/crdt"
)

func TestWatchlistItem_Clone(t *testing.T) {
	watchedAt := time.Now()
	original := &WatchlistItem{
		ID:            "item-1",
		UserID:        "user-1",
		MovieID:       "movie-42",
		Notes:         "original notes",
		Priority:      3,
		Watched:       true,
		WatchedAt:     &watchedAt,
		VectorClock:   crdt.Clock{"A": 2, "B": 1},
		SyncVersion:   5,
		OriginReplica: "A",
	}

	cloned := original.Clone()
	require.Equal(t, original, cloned)

	// Глубокая копия: изменение копии не трогает оригинал
	cloned.VectorClock["A"] = 99
	*cloned.WatchedAt = watchedAt.Add(time.Hour)
	cloned.Notes = "changed"

	assert.Equal(t, int64(2), original.VectorClock["A"])
	assert.Equal(t, watchedAt, *original.WatchedAt)
	assert.Equal(t, "original notes", original.Notes)
}

func TestWatchlistItem_Clone_NilWatchedAt(t *testing.T) {
	original := &WatchlistItem{ID: "item-1", VectorClock: crdt.Clock{"A": 1}}

	cloned := original.Clone()
	assert.Nil(t, cloned.WatchedAt)
}

func TestItemUpdate_Apply(t *testing.T) {
	now := time.Now()
	notes := "new notes"
	priority := 7
	watched := true
	unwatched := false

	tests := []struct {
		check func(t *testing.T, item *WatchlistItem)
		name  string
		upd   ItemUpdate
	}{
		{
			name: "nil fields change nothing",
			upd:  ItemUpdate{},
			check: func(t *testing.T, item *WatchlistItem) {
				assert.Equal(t, "old", item.Notes)
				assert.Equal(t, 1, item.Priority)
				assert.False(t, item.Watched)
				assert.Nil(t, item.WatchedAt)
			},
		},
		{
			name: "set notes only",
			upd:  ItemUpdate{Notes: &notes},
			check: func(t *testing.T, item *WatchlistItem) {
				assert.Equal(t, "new notes", item.Notes)
				assert.Equal(t, 1, item.Priority)
			},
		},
		{
			name: "set priority only",
			upd:  ItemUpdate{Priority: &priority},
			check: func(t *testing.T, item *WatchlistItem) {
				assert.Equal(t, 7, item.Priority)
				assert.Equal(t, "old", item.Notes)
			},
		},
		{
			name: "mark watched sets watched_at",
			upd:  ItemUpdate{Watched: &watched},
			check: func(t *testing.T, item *WatchlistItem) {
				assert.True(t, item.Watched)
				require.NotNil(t, item.WatchedAt)
				assert.Equal(t, now, *item.WatchedAt)
			},
		},
		{
			name: "all fields at once",
			upd:  ItemUpdate{Notes: &notes, Priority: &priority, Watched: &watched},
			check: func(t *testing.T, item *WatchlistItem) {
				assert.Equal(t, "new notes", item.Notes)
				assert.Equal(t, 7, item.Priority)
				assert.True(t, item.Watched)
				assert.NotNil(t, item.WatchedAt)
			},
		},
		{
			name: "unwatch clears watched_at",
			upd:  ItemUpdate{Watched: &unwatched},
			check: func(t *testing.T, item *WatchlistItem) {
				assert.False(t, item.Watched)
				assert.Nil(t, item.WatchedAt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &WatchlistItem{Notes: "old", Priority: 1}
			if tt.name == "unwatch clears watched_at" {
				prev := now.Add(-time.Hour)
				item.Watched = true
				item.WatchedAt = &prev
			}

			tt.upd.Apply(item, now)
			tt.check(t, item)
		})
	}
}

func TestItemUpdate_Apply_WatchedAtInvariant(t *testing.T) {
	// WatchedAt не nil тогда и только тогда, когда Watched = true,
	// через любую последовательность применений
	item := &WatchlistItem{}
	watched := true
	unwatched := false

	steps := []ItemUpdate{
		{Watched: &watched},
		{Watched: &unwatched},
		{Watched: &watched},
		{},
	}

	for _, upd := range steps {
		upd.Apply(item, time.Now())
		assert.Equal(t, item.Watched, item.WatchedAt != nil)
	}
}
