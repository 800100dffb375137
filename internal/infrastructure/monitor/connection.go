package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger is the storage health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor periodically pings the storage backend and caches the result.
type Monitor struct {
	store  Pinger
	driver string

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func New(store Pinger, driver string, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval < time.Second {
		interval = 10 * time.Second
	}
	// cron schedules in whole seconds
	interval = interval.Round(time.Second)
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		store:    store,
		driver:   driver,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}

	schedule := "@every " + interval.String()
	_, _ = m.cron.AddFunc(schedule, m.Refresh)
	return m
}

// Start takes a first reading and launches the scheduler.
func (m *Monitor) Start() {
	m.Refresh()
	m.cron.Start()
}

// Stop halts the scheduler, waiting for a running check or ctx.
func (m *Monitor) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Storage
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh pings the store once and records the outcome.
func (m *Monitor) Refresh() {
	status := Status{Driver: m.driver, LastCheck: time.Now()}

	if m.store == nil {
		status.Error = "storage not configured"
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		start := time.Now()
		err := m.store.Ping(ctx)
		cancel()
		status.Latency = time.Since(start)
		if err != nil {
			status.Error = err.Error()
		} else {
			status.Storage = true
		}
	}

	m.mu.Lock()
	was := m.status
	m.status = status
	m.mu.Unlock()

	if !status.Storage && (was.Storage || was.LastCheck.IsZero()) {
		m.logger.Warn("storage unreachable", zap.String("driver", m.driver), zap.String("error", status.Error))
	}
	if status.Storage && !was.Storage && !was.LastCheck.IsZero() {
		m.logger.Info("storage reachable again", zap.String("driver", m.driver))
	}
}
