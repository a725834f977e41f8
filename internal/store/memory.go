package store

import (
	"context"
	"sync"
)

// Memory is an in-process [KeyValue] backend backed by a plain map. It is
// the default backend for development and the fake injected by tests.
//
// The mutex only guards against concurrent use from multiple goroutines in
// tests; the engine itself is invoked serially by the gateway.
type Memory struct {
	mu   sync.RWMutex
	data map[Field]map[string][]byte
}

// NewMemory constructs an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[Field]map[string][]byte)}
}

// Get implements [KeyValue]. Absent keys return (nil, nil).
func (m *Memory) Get(_ context.Context, field Field, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[field][string(key)]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements [KeyValue].
func (m *Memory) Set(_ context.Context, field Field, key []byte, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.data[field]
	if !ok {
		table = make(map[string][]byte)
		m.data[field] = table
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	table[string(key)] = stored
	return nil
}

// Has implements [KeyValue].
func (m *Memory) Has(_ context.Context, field Field, key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[field][string(key)]
	return ok, nil
}
