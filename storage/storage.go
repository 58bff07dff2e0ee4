package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// BlobStore is the object storage the QR provisioning flow writes to.
// Upload overwrites any existing object at key and returns the public URL
// of the stored object.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// MemoryStore keeps objects in a map. Used by tests and as a local
// development fallback when no blob endpoint is configured; URLs it hands
// out are not actually servable.
type MemoryStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string][]byte),
	}
}

func (m *MemoryStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.objects[key] = buf
	return fmt.Sprintf("%s/%s", m.BaseURL, key), nil
}

// Get returns the stored object, for tests.
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}

// Len returns the number of stored objects, for tests.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
