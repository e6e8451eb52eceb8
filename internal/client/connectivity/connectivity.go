// Package connectivity отслеживает доступность удаленного сервера и
// сообщает о переходах offline → online, по которым запускается
// синхронизация накопленных офлайн-мутаций.
package connectivity

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// ProbeFunc проверяет доступность сервера. Возвращает true, если сервер
// отвечает. Production-реализация — Ping API-клиента.
type ProbeFunc func(ctx context.Context) bool

// Monitor periodically probes the authority and reports offline→online
// transitions.
type Monitor struct {
	probe    ProbeFunc
	logger   *slog.Logger
	online   atomic.Bool
	onlineCh chan struct{}
	interval time.Duration
}

// NewMonitor creates a connectivity monitor. Начальное состояние —
// offline, пока первый probe не скажет обратное.
func NewMonitor(probe ProbeFunc, interval time.Duration, logger *slog.Logger) *Monitor {
	return &Monitor{
		probe:    probe,
		interval: interval,
		logger:   logger,
		onlineCh: make(chan struct{}, 1),
	}
}

// IsOnline reports the last observed connectivity state.
func (m *Monitor) IsOnline() bool {
	return m.online.Load()
}

// Online returns a channel that receives one signal per offline→online
// transition. Канал буферизован на один элемент: непрочитанный сигнал
// поглощает последующие переходы, что достаточно для запуска
// синхронизации.
func (m *Monitor) Online() <-chan struct{} {
	return m.onlineCh
}

// Run probes the authority on the configured interval until ctx is done.
// Первый probe выполняется сразу, не дожидаясь интервала.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// check выполняет один probe и фиксирует переход состояния
func (m *Monitor) check(ctx context.Context) {
	now := m.probe(ctx)
	was := m.online.Swap(now)

	if now && !was {
		m.logger.Info("connectivity restored")
		select {
		case m.onlineCh <- struct{}{}:
		default:
		}
	} else if !now && was {
		m.logger.Info("connectivity lost, mutations will queue locally")
	}
}
