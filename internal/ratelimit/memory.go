package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// Memory is a process-local fixed window counter. Counters are not shared
// between instances.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{windows: make(map[string]*window), now: time.Now}
}

// NewMemoryWithClock is used by tests to control time.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{windows: make(map[string]*window), now: now}
}

func (m *Memory) Allow(_ context.Context, identifier string, p Policy) (bool, error) {
	if err := p.validate(); err != nil {
		return true, err
	}

	now := m.now()
	k := key(identifier, p.Action)

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[k]
	if !ok || !now.Before(w.resetAt) {
		m.windows[k] = &window{count: 1, resetAt: now.Add(p.Window)}
		return true, nil
	}
	if w.count >= p.MaxRequests {
		return false, nil
	}
	w.count++
	return true, nil
}

// Sweep drops windows that have expired and returns how many were removed.
func (m *Memory) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for k, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, k)
			removed++
		}
	}
	return removed
}

// StartSweeper sweeps every interval until ctx is done.
func (m *Memory) StartSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.Sweep()
			}
		}
	}()
}

func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
