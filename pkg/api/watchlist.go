package api

import "time"

// Item представляет одну запись watchlist в wire-формате сервера.
// Формат совпадает с локальной моделью: сервер хранит те же поля,
// включая tombstone и векторные часы.
type Item struct {
	AddedAt       time.Time        `json:"added_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	WatchedAt     *time.Time       `json:"watched_at"`
	VectorClock   map[string]int64 `json:"vector_clock"`
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	MovieID       string           `json:"movie_id"`
	Notes         string           `json:"notes"`
	OriginReplica string           `json:"origin_replica"`
	Priority      int              `json:"priority"`
	SyncVersion   int64            `json:"sync_version"`
	Watched       bool             `json:"watched"`
	IsDeleted     bool             `json:"is_deleted"`
}

// PushResponse представляет ответ сервера на push одной записи.
// Сервер принимает запись, только если её sync_version новее хранимой,
// поэтому повторный push уже принятой версии безвреден.
type PushResponse struct {
	Accepted    bool  `json:"accepted"`     // Accepted запись принята сервером
	SyncVersion int64 `json:"sync_version"` // SyncVersion версия, которую сервер хранит после push
}

// ErrorResponse представляет ошибку от сервера
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
