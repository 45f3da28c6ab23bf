package persistence

import (
	"context"
	"sync"
)

// memoryStore keeps the snapshot in process memory. Used for tests and as
// the default backend when persistence is not configured.
type memoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{}
}

func (m *memoryStore) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}

func (m *memoryStore) Load(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, ErrNoSnapshot
	}

	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *memoryStore) Close() error {
	return nil
}
