// Package store manages the persisted collection of sessions. The
// persistence boundary is a single opaque blob behind BlobStore, so the
// dedup/replace logic tests against an in-memory substitute.
package store

import "sync"

// BlobStore is the opaque persistence boundary: one blob under one fixed
// key. Get returns (nil, nil) when nothing has been stored yet.
type BlobStore interface {
	Get() ([]byte, error)
	Set(data []byte) error
	Close() error
}

// MemoryStore is an in-process BlobStore, used in tests and as a scratch
// backend.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Get() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemoryStore) Set(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
