package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// testHookCrashBeforeRename runs between the temp file write and the rename.
var testHookCrashBeforeRename func()

// RenameError is returned when the final replace step fails. The temp file
// has been removed by then; TempPath names it for diagnostics.
type RenameError struct {
	Err      error
	tempPath string
}

func (e RenameError) Error() string    { return e.Err.Error() }
func (e RenameError) TempPath() string { return e.tempPath }
func (e RenameError) Unwrap() error    { return e.Err }

// AtomicWriteFile replaces filename with data. Readers observe either the
// previous content or the new content, never a partial write. Missing parent
// directories are created.
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath, err := writeTemp(dir, "."+filepath.Base(filename)+".tmp*", data, perm)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rmErr := os.Remove(tempPath); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Warn("[Storage] failed to remove temporary file", "path", tempPath, "error", rmErr)
		}
	}()

	if testHookCrashBeforeRename != nil {
		testHookCrashBeforeRename()
	}

	if err := replaceFile(tempPath, filename); err != nil {
		return RenameError{Err: err, tempPath: tempPath}
	}
	committed = true
	syncDir(dir)
	return nil
}

// writeTemp writes data to a new file in dir, so that the final rename never
// crosses file systems, and returns its path once the content is durable.
func writeTemp(dir, pattern string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	fail := func(format string, err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf(format, err)
	}
	if _, err := f.Write(data); err != nil {
		return fail("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fail("failed to sync temp file: %w", err)
	}
	if err := f.Chmod(perm); err != nil {
		return fail("failed to chmod temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close temp file %q: %w", path, err)
	}
	return path, nil
}
