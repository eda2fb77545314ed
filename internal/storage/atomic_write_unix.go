//go:build !windows

package storage

import "os"

func replaceFile(from, to string) error {
	return os.Rename(from, to)
}

// syncDir flushes a rename to disk. Some file systems reject fsync on a
// directory, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
