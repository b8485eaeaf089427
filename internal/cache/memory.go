package cache

import (
	"context"
	"sync"
	"time"

	"tokenlens/internal/domain"
)

type entry struct {
	analysis  *domain.Analysis
	expiresAt time.Time
}

// Memory is the default in-process backend. Expired entries are evicted
// lazily when looked up; nothing sweeps the map in the background.
type Memory struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) (*domain.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.items, key)
		return nil, nil
	}
	return e.analysis, nil
}

func (m *Memory) Set(ctx context.Context, key string, analysis *domain.Analysis, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = entry{analysis: analysis, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]entry)
	return nil
}
