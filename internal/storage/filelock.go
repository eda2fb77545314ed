package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// dirLock is an exclusive advisory lock on a namespace directory, held for
// the lifetime of a FileSystemBackend.
type dirLock struct {
	f *os.File
}

// lockDir takes the lock file inside dir without waiting. A lock held
// through another handle, in this process or another, fails with
// ErrWouldBlock.
func lockDir(dir string) (*dirLock, error) {
	f, err := os.OpenFile(filepath.Join(dir, lockFileName), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := tryLockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &dirLock{f: f}, nil
}

// held reports whether the lock has not been released.
func (l *dirLock) held() bool {
	return l != nil && l.f != nil
}

// release unlocks and closes the lock file. The file stays in place so that
// every opener locks the same inode. Releasing twice is a no-op.
func (l *dirLock) release() error {
	if !l.held() {
		return nil
	}
	f := l.f
	l.f = nil
	return errors.Join(unlockFile(f), f.Close())
}
