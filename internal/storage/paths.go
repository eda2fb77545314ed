package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// To enable testing without polluting the user's config directory, the
// default directory lookup is a variable the test suite can override.
var storeDirectory = StoreDirectory

// SetTestPaths overrides the default store directory for testing.
// This should only be used in tests.
func SetTestPaths(dir string) {
	storeDirectory = func() (string, error) { return dir, nil }
}

// ResetPaths resets the default store directory.
// This should only be used in tests.
func ResetPaths() {
	storeDirectory = StoreDirectory
}

// StoreDirectory returns the default root directory of the fs backend.
// Uses os.UserConfigDir() to resolve to {UserConfigDir}/chart-view/store/
func StoreDirectory() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "chart-view", "store"), nil
}

// DocumentFileName maps a storage key to a portable file name.
// File naming: {escaped key}.json, where every byte outside [a-z0-9._-]
// is written as %XX. Upper-case letters are escaped too, so keys differing
// only in case stay distinct on case-insensitive file systems.
func DocumentFileName(key string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(key) + len(".json"))
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '.', c == '_', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	b.WriteString(".json")
	return b.String()
}

// lockFileName is the advisory lock held for the lifetime of an fs backend.
const lockFileName = ".chartview.lock"

// validNamespace rejects namespaces that are not a single path element, so
// that a namespace can never escape the store root.
func validNamespace(namespace string) error {
	switch {
	case namespace == "":
		return fmt.Errorf("namespace cannot be empty")
	case namespace == "." || namespace == "..":
		return fmt.Errorf("invalid namespace %q", namespace)
	case strings.ContainsAny(namespace, `/\`+"\x00"):
		return fmt.Errorf("invalid namespace %q: path separators are not allowed", namespace)
	case filepath.VolumeName(namespace) != "":
		return fmt.Errorf("invalid namespace %q: volume names are not allowed", namespace)
	}
	return nil
}
