package store

import (
	"sync"

	"github.com/i474232898/location-report/internal/location"
)

// Memory is a concurrency-safe in-memory store. Nothing survives the process.
type Memory[R any] struct {
	mu   sync.RWMutex
	rows []Row[R]
	keys map[location.Key]struct{}
}

// NewMemory creates an empty Memory store.
func NewMemory[R any]() *Memory[R] {
	return &Memory[R]{keys: make(map[location.Key]struct{})}
}

// LoadAll returns a copy of every stored row in insertion order.
func (m *Memory[R]) LoadAll() ([]Row[R], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Row[R], len(m.rows))
	copy(out, m.rows)
	return out, nil
}

// Append adds rows for keys not stored yet.
func (m *Memory[R]) Append(rows []Row[R]) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fresh := onlyNew(m.keys, rows)
	for _, r := range fresh {
		m.rows = append(m.rows, r)
	}
	for _, r := range fresh {
		m.keys[r.Key.Normalized()] = struct{}{}
	}
	return len(fresh), nil
}

func (m *Memory[R]) Close() error { return nil }
