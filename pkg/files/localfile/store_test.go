package localfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fileway/fileway/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	origHostname := osHostname
	defer func() { osHostname = origHostname }()

	t.Run("valid_root", func(t *testing.T) {
		osHostname = func() (string, error) {
			return "test-host", nil
		}
		s := NewStore("/tmp")
		assert.Equal(t, "/tmp", s.Root())
		assert.Equal(t, "test-host", s.RootTitle())
		assert.Equal(t, "local", s.Type())
	})

	t.Run("hostname_error", func(t *testing.T) {
		osHostname = func() (string, error) {
			return "", errors.New("hostname error")
		}
		s := NewStore("/tmp")
		assert.Equal(t, "/tmp", s.RootTitle())
	})

	t.Run("empty_root_defaults_to_slash", func(t *testing.T) {
		osHostname = func() (string, error) { return "h", nil }
		s := NewStore("")
		assert.Equal(t, "/", s.Root())
	})
}

func TestStore_ListContents(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bar.txt"), []byte("xy"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "foobar.txt"), []byte("xyz"), 0o644))

	s := NewStore(dir)

	t.Run("flat", func(t *testing.T) {
		entries, err := s.ListContents(ctx, dir, false)
		require.NoError(t, err)
		files.SortEntries(entries)

		require.Len(t, entries, 3)
		assert.Equal(t, "b", entries[0].Name())
		assert.True(t, entries[0].IsDir())
		assert.Equal(t, "bar.txt", entries[1].Name())
		assert.Equal(t, "foo.txt", entries[2].Name())

		size, ok := entries[1].Size()
		assert.True(t, ok)
		assert.Equal(t, int64(2), size)
		_, ok = entries[1].ModTime()
		assert.True(t, ok)
	})

	t.Run("recursive", func(t *testing.T) {
		entries, err := s.ListContents(ctx, dir, true)
		require.NoError(t, err)

		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		assert.ElementsMatch(t, []string{"foo.txt", "bar.txt", "b", "foobar.txt"}, names)
	})

	t.Run("missing_dir", func(t *testing.T) {
		_, err := s.ListContents(ctx, filepath.Join(dir, "nope"), false)
		assert.Error(t, err)
	})

	t.Run("context_cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.ListContents(cancelled, dir, false)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_AbsolutePath(t *testing.T) {
	s := NewStore("/")
	assert.Equal(t, "/a/b/c.txt", s.AbsolutePath("/a/b", "c.txt"))
}

func TestStore_CreateFolder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	target := filepath.Join(dir, "newdir")
	require.NoError(t, s.CreateFolder(ctx, target))
	assert.DirExists(t, target)

	t.Run("already_exists", func(t *testing.T) {
		err := s.CreateFolder(ctx, target)
		assert.ErrorIs(t, err, files.ErrAlreadyExists)
	})
}

func TestStore_CreateFile_ReadFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	target := filepath.Join(dir, "hello.txt")
	require.NoError(t, s.CreateFile(ctx, target, []byte("hello")))

	data, err := s.ReadFile(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestStore_PathExists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	assert.True(t, s.PathExists(ctx, dir))
	assert.False(t, s.PathExists(ctx, filepath.Join(dir, "missing")))
}

func TestStore_GoUp(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	t.Run("regular_parent", func(t *testing.T) {
		child := filepath.Join(dir, "a", "b")
		assert.Equal(t, filepath.Join(dir, "a"), s.GoUp(child))
	})

	t.Run("mount_root_is_idempotent", func(t *testing.T) {
		assert.Equal(t, dir, s.GoUp(dir))
	})

	t.Run("never_escapes_the_mount", func(t *testing.T) {
		assert.Equal(t, dir, s.GoUp(filepath.Join(dir, "a")))
		assert.Equal(t, dir, s.GoUp("/somewhere/else"))
	})
}

func TestStore_GetFileOrFolder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	filePath := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("abcd"), 0o644))

	t.Run("file", func(t *testing.T) {
		entry, err := s.GetFileOrFolder(ctx, filePath)
		require.NoError(t, err)
		assert.False(t, entry.IsDir())
		size, ok := entry.Size()
		assert.True(t, ok)
		assert.Equal(t, int64(4), size)
	})

	t.Run("folder", func(t *testing.T) {
		entry, err := s.GetFileOrFolder(ctx, dir)
		require.NoError(t, err)
		assert.True(t, entry.IsDir())
	})

	t.Run("raced_delete_yields_unknown_meta", func(t *testing.T) {
		entry, err := s.GetFileOrFolder(ctx, filepath.Join(dir, "vanished.txt"))
		require.NoError(t, err)
		assert.Equal(t, "vanished.txt", entry.Name())
		_, ok := entry.Size()
		assert.False(t, ok)
		_, ok = entry.ModTime()
		assert.False(t, ok)
	})

	t.Run("other_stat_errors_propagate", func(t *testing.T) {
		origStat := osStat
		defer func() { osStat = origStat }()
		osStat = func(name string) (os.FileInfo, error) {
			return nil, os.ErrPermission
		}
		_, err := s.GetFileOrFolder(ctx, filePath)
		assert.ErrorIs(t, err, os.ErrPermission)
	})
}

func TestStore_Rename_Delete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewStore(dir)

	oldPath := filepath.Join(dir, "old.txt")
	newPath := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(oldPath, []byte("x"), 0o644))

	require.NoError(t, s.Rename(ctx, oldPath, newPath))
	assert.NoFileExists(t, oldPath)
	assert.FileExists(t, newPath)

	require.NoError(t, s.Delete(ctx, newPath))
	assert.NoFileExists(t, newPath)

	t.Run("delete_missing_fails", func(t *testing.T) {
		assert.Error(t, s.Delete(ctx, newPath))
	})
}
