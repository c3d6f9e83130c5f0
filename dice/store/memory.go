package store

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

type memoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryStore returns a Store that keeps all state in process memory.
// Update calls are serialized.
func NewMemoryStore() Store {
	return &memoryStore{
		data: make(map[string][]byte),
	}
}

func (m *memoryStore) get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryStore) Update(ctx context.Context, fn func(Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	t := newTxn(m.get)
	if err := fn(t); err != nil {
		return err
	}

	for _, k := range t.keys() {
		m.data[k] = t.writes[k]
	}
	log.WithField("component", "memory_store").Debugf("committed %d keys", len(t.writes))

	return nil
}

func (m *memoryStore) View(ctx context.Context, fn func(Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}

	return fn(newTxn(m.get))
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
