package sync

import (
	"context"
	"log/slog"
	"sync"
)

// Trigger решает, когда запускается сверка, и схлопывает параллельные
// запросы. Машина состояний на реплику: Idle и Running(pendingFollowUp).
// Request в Idle запускает проход; Request во время прохода лишь
// записывает не более одного follow-up прохода после текущего. Два
// прохода никогда не идут одновременно, чтобы не решать слияние одной
// и той же конкурентной правки дважды.
type Trigger struct {
	svc     Service
	logger  *slog.Logger
	done    chan struct{}
	userID  string
	mu      sync.Mutex
	running bool
	pending bool
}

// NewTrigger creates a sync trigger for one user of this installation.
func NewTrigger(svc Service, userID string, logger *slog.Logger) *Trigger {
	return &Trigger{
		svc:    svc,
		userID: userID,
		logger: logger,
	}
}

// Request запрашивает проход сверки. Безопасен из любой горутины,
// никогда не блокируется и не ждет ни сети, ни завершения прохода.
func (t *Trigger) Request() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		// Проход уже идет: запоминаем ровно один follow-up
		t.pending = true
		return
	}

	t.running = true
	t.done = make(chan struct{})
	go t.loop()
}

// Wait блокируется, пока машина не вернется в Idle (все запрошенные
// проходы завершены). Используется одноразовыми CLI-командами и тестами.
func (t *Trigger) Wait(ctx context.Context) error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	done := t.done
	t.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loop выполняет проходы, пока есть запросы. Ошибки сверки логируются
// и глотаются: следующий триггер (reconnect или очередная мутация)
// повторит попытку, мутации при этом надежно лежат в outbox.
func (t *Trigger) loop() {
	for {
		if _, err := t.svc.Reconcile(context.Background(), t.userID); err != nil {
			t.logger.Warn("reconciliation failed, will retry on next trigger", "error", err)
		}

		t.mu.Lock()
		if !t.pending {
			t.running = false
			close(t.done)
			t.mu.Unlock()
			return
		}
		t.pending = false
		t.mu.Unlock()
	}
}
