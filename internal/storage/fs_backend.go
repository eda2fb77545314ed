package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var errClosed = errors.New("backend is closed")

// FileSystemBackend implements Backend with one JSON file per key under a
// namespace directory.
type FileSystemBackend struct {
	dir  string
	lock *dirLock
}

// NewFileSystemBackend creates a file system backend rooted at
// {root}/{namespace}. An empty root selects StoreDirectory. It acquires an
// exclusive lock on the namespace to prevent concurrent writers; a held lock
// fails with ErrWouldBlock.
func NewFileSystemBackend(root, namespace string) (*FileSystemBackend, error) {
	if err := validNamespace(namespace); err != nil {
		return nil, err
	}
	if root == "" {
		var err error
		root, err = storeDirectory()
		if err != nil {
			return nil, fmt.Errorf("failed to get store directory: %w", err)
		}
	}

	dir := filepath.Join(root, namespace)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	lock, err := lockDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire store lock: %w", err)
	}

	return &FileSystemBackend{dir: dir, lock: lock}, nil
}

// Dir returns the namespace directory holding the documents.
func (b *FileSystemBackend) Dir() string {
	return b.dir
}

func (b *FileSystemBackend) path(key string) string {
	return filepath.Join(b.dir, DocumentFileName(key))
}

// Get reads the document stored under key.
// It returns (nil, nil) if the document does not exist.
func (b *FileSystemBackend) Get(key string) ([]byte, error) {
	if !b.lock.held() {
		return nil, errClosed
	}
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// Set atomically replaces the document stored under key.
func (b *FileSystemBackend) Set(key string, value []byte) error {
	if !b.lock.held() {
		return errClosed
	}
	if err := AtomicWriteFile(b.path(key), value, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Delete removes the document stored under key.
func (b *FileSystemBackend) Delete(key string) error {
	if !b.lock.held() {
		return errClosed
	}
	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	return nil
}

// Close releases the namespace lock. Later calls fail with a closed error,
// except Close, which is a no-op.
func (b *FileSystemBackend) Close() error {
	if err := b.lock.release(); err != nil {
		return fmt.Errorf("failed to release store lock: %w", err)
	}
	return nil
}

var _ Backend = (*FileSystemBackend)(nil)
