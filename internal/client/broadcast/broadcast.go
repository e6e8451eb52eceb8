// Package broadcast доставляет уведомления об изменениях watchlist
// соседним контекстам той же инсталляции (другим процессам или
// подписчикам внутри процесса). Доставка best-effort, не более одного
// раза на публикацию: контекст, пропустивший сообщение, обязан
// синхронизироваться при следующей активации. Broadcast — оптимизация,
// а не источник истины.
package broadcast

import (
	"context"

	"github.com/filmoteka/watchsync/internal/models"
)

//go:generate go tool moq -out broadcast_mock.go . Broadcaster

// EventType тип широковещательного сообщения
type EventType string

const (
	// EventUpdate несет новую или измененную запись
	EventUpdate EventType = "update"
	// EventConflicts несет записи, слитые из конкурентных правок
	// за один проход синхронизации
	EventConflicts EventType = "conflicts"
	// EventSyncRequest — сигнал "sync now" от привилегированного фонового
	// контекста. Несет только факт запроса, никогда данные.
	EventSyncRequest EventType = "sync_request"
)

// Event represents a single broadcast message.
type Event struct {
	Item  *models.WatchlistItem   `json:"item,omitempty"`
	Items []*models.WatchlistItem `json:"items,omitempty"`
	Type  EventType               `json:"type"`
}

// Broadcaster publishes change events to sibling contexts of the same
// installation and exposes the inbound event stream.
type Broadcaster interface {
	// PublishUpdate announces a new or modified item.
	PublishUpdate(ctx context.Context, item *models.WatchlistItem) error

	// PublishConflicts announces the concurrently-resolved items of one
	// reconciliation pass.
	PublishConflicts(ctx context.Context, items []*models.WatchlistItem) error

	// RequestSync asks all contexts of the installation to reconcile now.
	RequestSync(ctx context.Context) error

	// Subscribe returns the inbound event stream. Delivery is best-effort:
	// a slow consumer misses events instead of blocking publishers.
	Subscribe() <-chan Event

	// Close tears down the transport and closes subscriber channels.
	Close() error
}
