// Package storage persists chart configuration and data rows. Backends
// implement a small key-value contract; Store layers the chart-specific
// artifacts on top of it and absorbs every failure.
package storage

import "errors"

// Backend defines the contract for all persistence mechanisms. Keys are
// opaque strings, values are JSON documents.
type Backend interface {
	// Get retrieves the document stored under key.
	// It MUST return (nil, nil) if the key does not exist.
	Get(key string) ([]byte, error)

	// Set replaces the document stored under key.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close performs any necessary cleanup of backend resources, such as releasing file locks.
	Close() error
}

var (
	// ErrUnknownBackend is returned by Open for an unregistered backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrWouldBlock signals that a non-blocking lock attempt failed due to the
	// resource being locked by another process.
	ErrWouldBlock = errors.New("file lock would block")
)
