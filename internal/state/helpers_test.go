package state

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/joeycumines/chartview/internal/storage"
	"github.com/stretchr/testify/require"
)

// countingBackend records writes on top of an in-memory backend.
type countingBackend struct {
	storage.Backend
	mu   sync.Mutex
	sets map[string]int
	dels map[string]int
}

func (c *countingBackend) Set(key string, value []byte) error {
	c.mu.Lock()
	c.sets[key]++
	c.mu.Unlock()
	return c.Backend.Set(key, value)
}

func (c *countingBackend) Delete(key string) error {
	c.mu.Lock()
	c.dels[key]++
	c.mu.Unlock()
	return c.Backend.Delete(key)
}

func (c *countingBackend) setCount(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets[key]
}

// failingBackend fails every write and delete, and reads as empty.
type failingBackend struct{}

func (failingBackend) Get(string) ([]byte, error) { return nil, nil }
func (failingBackend) Set(string, []byte) error   { return errors.New("quota exceeded") }
func (failingBackend) Delete(string) error        { return errors.New("quota exceeded") }
func (failingBackend) Close() error               { return nil }

func newCountingStore(t *testing.T) (*storage.Store, *countingBackend) {
	t.Helper()
	mem, err := storage.NewInMemoryBackend(t.Name())
	require.NoError(t, err)
	t.Cleanup(storage.ClearAllInMemory)
	b := &countingBackend{Backend: mem, sets: map[string]int{}, dels: map[string]int{}}
	return storage.NewStore(b, discardLogger()), b
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}
