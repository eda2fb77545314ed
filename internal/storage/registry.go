package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// Backend names accepted by Open.
const (
	BackendAuto     = "auto"
	BackendFS       = "fs"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendNone     = "none"
)

// BackendOptions carries the settings any backend factory may need.
type BackendOptions struct {
	// Namespace partitions documents between independent editors.
	Namespace string
	// Dir is the fs backend root. Empty selects StoreDirectory.
	Dir string
	// DSN is the postgres connection string.
	DSN string
	// Timeout bounds postgres statements.
	Timeout time.Duration
}

// BackendFactory is a function that creates a new Backend instance. A factory
// may return a nil Backend to signal that no storage is available.
type BackendFactory func(opts BackendOptions) (Backend, error)

// BackendRegistry maps backend names to their factory functions.
var BackendRegistry = make(map[string]BackendFactory)

// isInteractive reports whether the process has an interactive terminal.
// Overridden in tests.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	BackendRegistry[BackendFS] = func(opts BackendOptions) (Backend, error) {
		return openFileSystem(opts)
	}

	BackendRegistry[BackendMemory] = func(opts BackendOptions) (Backend, error) {
		b, err := NewInMemoryBackend(opts.Namespace)
		if err != nil {
			return nil, err
		}
		return b, nil
	}

	BackendRegistry[BackendPostgres] = func(opts BackendOptions) (Backend, error) {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultPostgresTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		b, err := NewPostgresBackend(ctx, opts.DSN, opts.Namespace, timeout)
		if err != nil {
			return nil, err
		}
		return b, nil
	}

	BackendRegistry[BackendNone] = func(BackendOptions) (Backend, error) {
		return nil, nil
	}

	// Headless processes get no durable storage, matching a fresh session.
	BackendRegistry[BackendAuto] = func(opts BackendOptions) (Backend, error) {
		if !isInteractive() {
			return nil, nil
		}
		return openFileSystem(opts)
	}
}

func openFileSystem(opts BackendOptions) (Backend, error) {
	b, err := NewFileSystemBackend(opts.Dir, opts.Namespace)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Open retrieves a backend by name and creates an instance. The returned
// Backend is nil, with a nil error, when the named backend provides no
// storage.
func Open(name string, opts BackendOptions) (Backend, error) {
	factory, ok := BackendRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
	return factory(opts)
}
