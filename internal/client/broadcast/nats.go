package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/filmoteka/watchsync/internal/models"
)

// NATS is a Broadcaster that carries events between processes of one
// installation over a NATS subject. Сообщения собственной публикации
// тоже приходят в подписку; получатели обязаны переживать дубли,
// поскольку все события идемпотентны для потребителя (перечитать
// локальное хранилище либо запустить синхронизацию).
type NATS struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	events  chan Event
	subject string
	logger  *slog.Logger
}

// Compile-time check that NATS implements Broadcaster
var _ Broadcaster = (*NATS)(nil)

// NewNATS connects to natsURL and subscribes to the installation subject.
// userID ограничивает область видимости событий одним пользователем.
func NewNATS(natsURL, userID string, logger *slog.Logger) (*NATS, error) {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	b := &NATS{
		conn:    conn,
		events:  make(chan Event, subscriberBuffer),
		subject: "watchsync." + userID + ".events",
		logger:  logger,
	}

	sub, err := conn.Subscribe(b.subject, b.handleMessage)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", b.subject, err)
	}
	b.sub = sub

	return b, nil
}

// PublishUpdate announces a new or modified item
func (b *NATS) PublishUpdate(ctx context.Context, item *models.WatchlistItem) error {
	return b.publish(Event{Type: EventUpdate, Item: item})
}

// PublishConflicts announces the merged items of one reconciliation pass
func (b *NATS) PublishConflicts(ctx context.Context, items []*models.WatchlistItem) error {
	return b.publish(Event{Type: EventConflicts, Items: items})
}

// RequestSync asks all contexts of the installation to reconcile now
func (b *NATS) RequestSync(ctx context.Context) error {
	return b.publish(Event{Type: EventSyncRequest})
}

// Subscribe returns the inbound event stream
func (b *NATS) Subscribe() <-chan Event {
	return b.events
}

// Close drains the subscription and closes the connection
func (b *NATS) Close() error {
	if b.sub != nil {
		if err := b.sub.Unsubscribe(); err != nil {
			b.logger.Warn("failed to unsubscribe", "subject", b.subject, "error", err)
		}
	}
	b.conn.Close()
	close(b.events)
	return nil
}

func (b *NATS) publish(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := b.conn.Publish(b.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// handleMessage декодирует входящее сообщение и отдает его подписчику
// без блокировки: best-effort доставка.
func (b *NATS) handleMessage(msg *nats.Msg) {
	var ev Event
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		b.logger.Warn("failed to unmarshal broadcast event", "error", err)
		return
	}

	select {
	case b.events <- ev:
	default:
		b.logger.Debug("dropping broadcast event, subscriber is slow", "type", ev.Type)
	}
}
