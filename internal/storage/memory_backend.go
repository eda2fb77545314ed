package storage

import (
	"fmt"
	"sync"
)

// InMemoryBackend implements Backend on a process-wide map partitioned by
// namespace. Documents outlive the backend instance, so a new editor in the
// same process sees what an earlier one saved.
type InMemoryBackend struct {
	namespace string
}

// Global in-memory storage shared across all instances.
var globalInMemoryStore = struct {
	sync.RWMutex
	namespaces map[string]map[string][]byte
}{
	namespaces: make(map[string]map[string][]byte),
}

// NewInMemoryBackend creates a new in-memory storage backend.
func NewInMemoryBackend(namespace string) (*InMemoryBackend, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &InMemoryBackend{namespace: namespace}, nil
}

// Get retrieves a copy of the document stored under key.
func (b *InMemoryBackend) Get(key string) ([]byte, error) {
	globalInMemoryStore.RLock()
	defer globalInMemoryStore.RUnlock()

	value, exists := globalInMemoryStore.namespaces[b.namespace][key]
	if !exists {
		return nil, nil
	}
	return append([]byte{}, value...), nil
}

// Set stores a copy of value under key.
func (b *InMemoryBackend) Set(key string, value []byte) error {
	copied := append([]byte{}, value...)

	globalInMemoryStore.Lock()
	defer globalInMemoryStore.Unlock()

	ns := globalInMemoryStore.namespaces[b.namespace]
	if ns == nil {
		ns = make(map[string][]byte)
		globalInMemoryStore.namespaces[b.namespace] = ns
	}
	ns[key] = copied
	return nil
}

// Delete removes key.
func (b *InMemoryBackend) Delete(key string) error {
	globalInMemoryStore.Lock()
	defer globalInMemoryStore.Unlock()

	delete(globalInMemoryStore.namespaces[b.namespace], key)
	return nil
}

// Close releases any resources (no-op for in-memory backend).
func (b *InMemoryBackend) Close() error {
	return nil
}

// ClearAllInMemory clears every namespace of the in-memory store (for testing).
func ClearAllInMemory() {
	globalInMemoryStore.Lock()
	globalInMemoryStore.namespaces = make(map[string]map[string][]byte)
	globalInMemoryStore.Unlock()
}

// Ensure InMemoryBackend implements Backend at compile time
var _ Backend = (*InMemoryBackend)(nil)
