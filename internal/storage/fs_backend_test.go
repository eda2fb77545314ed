package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileSystemBackend(t *testing.T) {
	t.Run("empty namespace returns error", func(t *testing.T) {
		_, err := NewFileSystemBackend(t.TempDir(), "")
		require.Error(t, err)
	})

	t.Run("creates namespace directory and lock", func(t *testing.T) {
		root := t.TempDir()
		b, err := NewFileSystemBackend(root, "ns")
		require.NoError(t, err)
		defer b.Close()

		assert.Equal(t, filepath.Join(root, "ns"), b.Dir())
		_, err = os.Stat(filepath.Join(root, "ns", lockFileName))
		assert.NoError(t, err)
	})

	t.Run("default root comes from store directory", func(t *testing.T) {
		dir := t.TempDir()
		SetTestPaths(dir)
		defer ResetPaths()

		b, err := NewFileSystemBackend("", "ns")
		require.NoError(t, err)
		defer b.Close()
		assert.Equal(t, filepath.Join(dir, "ns"), b.Dir())
	})

	t.Run("second open of a locked namespace would block", func(t *testing.T) {
		root := t.TempDir()
		first, err := NewFileSystemBackend(root, "locked")
		require.NoError(t, err)
		defer first.Close()

		_, err = NewFileSystemBackend(root, "locked")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrWouldBlock), "got %v", err)
	})

	t.Run("lock is released on close", func(t *testing.T) {
		root := t.TempDir()
		first, err := NewFileSystemBackend(root, "relock")
		require.NoError(t, err)
		require.NoError(t, first.Close())
		require.NoError(t, first.Close(), "close must be idempotent")

		_, err = os.Stat(filepath.Join(root, "relock", lockFileName))
		require.NoError(t, err, "the lock file outlives the backend")

		second, err := NewFileSystemBackend(root, "relock")
		require.NoError(t, err)
		require.NoError(t, second.Close())
	})
}

func TestFileSystemBackend_GetSetDelete(t *testing.T) {
	b, err := NewFileSystemBackend(t.TempDir(), "crud")
	require.NoError(t, err)
	defer b.Close()

	key := Key(KindConfig, "line")

	v, err := b.Get(key)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, b.Set(key, []byte(`{"smooth":true}`)))
	v, err = b.Get(key)
	require.NoError(t, err)
	assert.Equal(t, `{"smooth":true}`, string(v))

	_, err = os.Stat(filepath.Join(b.Dir(), "chart-view%3Aconfig%3Aline.json"))
	require.NoError(t, err)

	require.NoError(t, b.Set(key, []byte(`{}`)))
	v, _ = b.Get(key)
	assert.Equal(t, `{}`, string(v))

	require.NoError(t, b.Delete(key))
	v, err = b.Get(key)
	require.NoError(t, err)
	assert.Nil(t, v)
	require.NoError(t, b.Delete(key))
}

func TestFileSystemBackend_Closed(t *testing.T) {
	b, err := NewFileSystemBackend(t.TempDir(), "closed")
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, err = b.Get("k")
	assert.Error(t, err)
	assert.Error(t, b.Set("k", []byte("{}")))
	assert.Error(t, b.Delete("k"))
}

func TestFileSystemBackend_SurvivesReopen(t *testing.T) {
	root := t.TempDir()
	first, err := NewFileSystemBackend(root, "persist")
	require.NoError(t, err)
	require.NoError(t, first.Set("doc", []byte(`[1]`)))
	require.NoError(t, first.Close())

	second, err := NewFileSystemBackend(root, "persist")
	require.NoError(t, err)
	defer second.Close()
	v, err := second.Get("doc")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(v))
}

func TestDocumentFileName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"plain", "plain.json"},
		{"chart-view:data:pie", "chart-view%3Adata%3Apie.json"},
		{"a/b\\c", "a%2Fb%5Cc.json"},
		{"a.b_c-d", "a.b_c-d.json"},
		{"é", "%C3%A9.json"},
		{"chart-view:config:Line", "chart-view%3Aconfig%3A%4Cine.json"},
		{"100%", "100%25.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DocumentFileName(tt.key), tt.key)
	}
	assert.NotEqual(t, DocumentFileName("a:b"), DocumentFileName("a.b"))
	assert.NotEqual(t,
		strings.ToLower(DocumentFileName("chart-view:data:Line")),
		strings.ToLower(DocumentFileName("chart-view:data:line")),
		"keys differing in case must not collide on case-insensitive file systems")
}

func TestNewFileSystemBackend_RejectsEscapingNamespaces(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")
	for _, ns := range []string{".", "..", "../outside", "a/b", `a\b`, "nul\x00"} {
		_, err := NewFileSystemBackend(root, ns)
		assert.Error(t, err, "%q", ns)
	}
	_, err := os.Stat(filepath.Join(filepath.Dir(root), "outside"))
	assert.True(t, os.IsNotExist(err))

	b, err := NewFileSystemBackend(root, "ward-3.a")
	require.NoError(t, err)
	assert.NoError(t, b.Close())
}

func TestAtomicWriteFile(t *testing.T) {
	t.Run("writes and replaces", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "doc.json")
		require.NoError(t, AtomicWriteFile(path, []byte("one"), 0644))
		require.NoError(t, AtomicWriteFile(path, []byte("two"), 0644))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "two", string(data))
	})

	t.Run("crash before rename leaves target untouched and no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "doc.json")
		require.NoError(t, AtomicWriteFile(path, []byte("original"), 0644))

		testHookCrashBeforeRename = func() { panic("simulated crash") }
		defer func() { testHookCrashBeforeRename = nil }()

		assert.Panics(t, func() { _ = AtomicWriteFile(path, []byte("new"), 0644) })

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "original", string(data))

		matches, err := filepath.Glob(filepath.Join(dir, ".doc.json.tmp*"))
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("rename failure is a RenameError", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "target")
		require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0755))

		err := AtomicWriteFile(target, []byte("x"), 0644)
		require.Error(t, err)
		var renameErr RenameError
		require.True(t, errors.As(err, &renameErr))
		assert.NotEmpty(t, renameErr.TempPath())
	})
}
