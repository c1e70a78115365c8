package cursorstore

import (
	"context"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

type memoryEntry struct {
	payload   []byte
	createdAt time.Time
}

// Memory is an in-process Store for single-node deployments and tests.
// Expiry is checked lazily on read; Purge reclaims expired entries in bulk.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clk     clock.PassiveClock
}

// NewMemory creates an in-memory store. A zero ttl selects DefaultTTL and a
// nil clk selects the real clock.
func NewMemory(ttl time.Duration, clk clock.PassiveClock) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clk:     clk,
	}
}

func (m *Memory) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(payload))
	copy(buf, payload)
	m.entries[key] = memoryEntry{payload: buf, createdAt: m.clk.Now()}
	return nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if m.expired(e) {
		delete(m.entries, key)
		return nil, ErrNotFound
	}
	return e.payload, nil
}

func (m *Memory) Purge(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) Close() error { return nil }

// Len reports the number of live and not-yet-reclaimed entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) expired(e memoryEntry) bool {
	return m.clk.Now().Sub(e.createdAt) > m.ttl
}
