package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteka/watchsync/pkg/api"
)

func testItem(id string) api.Item {
	return api.Item{
		ID:          id,
		UserID:      "user-1",
		MovieID:     "movie-42",
		Notes:       "notes",
		Priority:    1,
		VectorClock: map[string]int64{"replica-A": 2},
		SyncVersion: 2,
		AddedAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestClient_FetchUserItems(t *testing.T) {
	items := []api.Item{testItem("item-1"), testItem("item-2")}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/watchlist/user-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(items))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	got, err := client.FetchUserItems(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "item-1", got[0].ID)
	assert.Equal(t, int64(2), got[0].VectorClock["replica-A"])
}

func TestClient_FetchUserItems_EscapesUserID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/watchlist/user%2F1", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.FetchUserItems(context.Background(), "user/1")
	require.NoError(t, err)
}

func TestClient_PushItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/watchlist/items/item-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var pushed api.Item
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pushed))
		assert.Equal(t, "item-1", pushed.ID)
		assert.Equal(t, int64(2), pushed.SyncVersion)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(api.PushResponse{
			Accepted:    true,
			SyncVersion: pushed.SyncVersion,
		}))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.PushItem(context.Background(), testItem("item-1"))
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Equal(t, int64(2), resp.SyncVersion)
}

func TestClient_PushItem_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		require.NoError(t, json.NewEncoder(w).Encode(api.ErrorResponse{
			Error:   "conflict",
			Message: "stored version is newer",
		}))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.PushItem(context.Background(), testItem("item-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "stored version is newer")
}

func TestClient_PushItem_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.PushItem(context.Background(), testItem("item-1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
	assert.NotErrorIs(t, err, ErrUnreachable)
}

func TestClient_ServerDown(t *testing.T) {
	// Сервер закрыт: все методы возвращают ErrUnreachable
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	_, err := client.FetchUserItems(ctx, "user-1")
	assert.ErrorIs(t, err, ErrUnreachable)

	_, err = client.PushItem(ctx, testItem("item-1"))
	assert.ErrorIs(t, err, ErrUnreachable)

	assert.ErrorIs(t, client.Ping(ctx), ErrUnreachable)
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.Ping(context.Background()))
}

func TestClient_ContextCancelled(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	err := client.Ping(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
}
