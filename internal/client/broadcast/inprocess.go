package broadcast

import (
	"context"
	"sync"

	"github.com/filmoteka/watchsync/internal/models"
)

// subscriberBuffer размер буфера канала подписчика; переполнение
// означает потерю события, что допустимо для best-effort доставки.
const subscriberBuffer = 16

// InProcess is a channel fan-out Broadcaster for single-process
// installations and tests.
type InProcess struct {
	subs   []chan Event
	mu     sync.Mutex
	closed bool
}

// Compile-time check that InProcess implements Broadcaster
var _ Broadcaster = (*InProcess)(nil)

// NewInProcess creates an in-process broadcaster.
func NewInProcess() *InProcess {
	return &InProcess{}
}

// PublishUpdate announces a new or modified item
func (b *InProcess) PublishUpdate(ctx context.Context, item *models.WatchlistItem) error {
	b.publish(Event{Type: EventUpdate, Item: item.Clone()})
	return nil
}

// PublishConflicts announces the merged items of one reconciliation pass
func (b *InProcess) PublishConflicts(ctx context.Context, items []*models.WatchlistItem) error {
	cloned := make([]*models.WatchlistItem, 0, len(items))
	for _, item := range items {
		cloned = append(cloned, item.Clone())
	}
	b.publish(Event{Type: EventConflicts, Items: cloned})
	return nil
}

// RequestSync asks all contexts to reconcile now
func (b *InProcess) RequestSync(ctx context.Context) error {
	b.publish(Event{Type: EventSyncRequest})
	return nil
}

// Subscribe returns a new subscriber channel
func (b *InProcess) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Close closes all subscriber channels
func (b *InProcess) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	return nil
}

// publish рассылает событие всем подписчикам без блокировки:
// переполненный канал пропускает событие.
func (b *InProcess) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Медленный подписчик теряет событие
		}
	}
}
