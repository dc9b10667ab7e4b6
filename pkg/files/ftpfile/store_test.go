package ftpfile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fileway/fileway/pkg/files"
)

type fakeConn struct {
	dirs    map[string][]*ftp.Entry
	stored  map[string][]byte
	renamed map[string]string
	deleted []string

	listErr   error
	storErr   error
	deleteErr error
	rmdErr    error
	quit      bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		dirs:    make(map[string][]*ftp.Entry),
		stored:  make(map[string][]byte),
		renamed: make(map[string]string),
	}
}

func (f *fakeConn) Login(user, password string) error { return nil }

func (f *fakeConn) List(path string) ([]*ftp.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	entries, ok := f.dirs[path]
	if !ok {
		return nil, errors.New("550 no such directory")
	}
	return entries, nil
}

func (f *fakeConn) ChangeDir(path string) error {
	if _, ok := f.dirs[path]; ok {
		return nil
	}
	return errors.New("550 no such directory")
}

func (f *fakeConn) MakeDir(path string) error {
	f.dirs[path] = nil
	return nil
}

func (f *fakeConn) Stor(path string, r io.Reader) error {
	if f.storErr != nil {
		return f.storErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.stored[path] = data
	return nil
}

func (f *fakeConn) Retr(path string) (io.ReadCloser, error) {
	data, ok := f.stored[path]
	if !ok {
		return nil, errors.New("550 no such file")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeConn) Rename(from, to string) error {
	f.renamed[from] = to
	return nil
}

func (f *fakeConn) Delete(path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeConn) RemoveDir(path string) error {
	if f.rmdErr != nil {
		return f.rmdErr
	}
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeConn) Quit() error {
	f.quit = true
	return nil
}

func newTestStore(conn ftpConn) *Store {
	s := NewStore("ftp.example.com")
	s.conn = conn
	return s
}

func TestStore_Identity(t *testing.T) {
	s := NewStore("ftp.example.com:2121", WithRoot("pub"))
	assert.Equal(t, "ftp", s.Type())
	assert.Equal(t, "/pub", s.Root())
	assert.Equal(t, "ftp://ftp.example.com:2121", s.RootTitle())
}

func TestStore_ListContents(t *testing.T) {
	ctx := context.Background()
	conn := newFakeConn()
	mod := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	conn.dirs["/pub"] = []*ftp.Entry{
		{Name: ".", Type: ftp.EntryTypeFolder},
		{Name: "..", Type: ftp.EntryTypeFolder},
		{Name: "docs", Type: ftp.EntryTypeFolder, Time: mod},
		{Name: "readme.txt", Type: ftp.EntryTypeFile, Size: 512, Time: mod},
		{Name: "no-mtime.bin", Type: ftp.EntryTypeFile, Size: 7},
	}
	conn.dirs["/pub/docs"] = []*ftp.Entry{
		{Name: "manual.pdf", Type: ftp.EntryTypeFile, Size: 1024, Time: mod},
	}
	s := newTestStore(conn)

	t.Run("flat", func(t *testing.T) {
		entries, err := s.ListContents(ctx, "/pub", false)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		files.SortEntries(entries)
		assert.Equal(t, "docs", entries[0].Name())
		assert.True(t, entries[0].IsDir())
		assert.Equal(t, "/pub/docs", entries[0].Path())

		assert.Equal(t, "no-mtime.bin", entries[1].Name())
		_, ok := entries[1].ModTime()
		assert.False(t, ok, "zero MLSD time maps to unknown")

		size, ok := entries[2].Size()
		assert.True(t, ok)
		assert.Equal(t, int64(512), size)
	})

	t.Run("recursive", func(t *testing.T) {
		entries, err := s.ListContents(ctx, "/pub", true)
		require.NoError(t, err)

		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		assert.ElementsMatch(t, []string{"docs", "manual.pdf", "readme.txt", "no-mtime.bin"}, names)
	})

	t.Run("error_propagates_and_drops_session", func(t *testing.T) {
		conn.listErr = errors.New("426 connection closed")
		defer func() { conn.listErr = nil }()

		_, err := s.ListContents(ctx, "/pub", false)
		assert.Error(t, err)
		assert.True(t, conn.quit)
		assert.Nil(t, s.conn)

		s.conn = conn // reattach for the remaining subtests
	})
}

func TestStore_AbsolutePath(t *testing.T) {
	s := NewStore("h")
	assert.Equal(t, "/pub/a.txt", s.AbsolutePath("/pub", "a.txt"))
	assert.Equal(t, "/a.txt", s.AbsolutePath("/", "a.txt"))
}

func TestStore_GoUp(t *testing.T) {
	t.Run("default_root", func(t *testing.T) {
		s := NewStore("h")
		assert.Equal(t, "/pub", s.GoUp("/pub/docs"))
		assert.Equal(t, "/", s.GoUp("/pub"))
		assert.Equal(t, "/", s.GoUp("/"))
	})

	t.Run("clamped_at_configured_root", func(t *testing.T) {
		s := NewStore("h", WithRoot("/pub"))
		assert.Equal(t, "/pub", s.GoUp("/pub"))
		assert.Equal(t, "/pub", s.GoUp("/pub/docs"))
	})

	t.Run("sibling_of_root_stays_clamped", func(t *testing.T) {
		// "/pub2" shares a prefix with "/pub" but is outside the mount.
		s := NewStore("h", WithRoot("/pub"))
		assert.Equal(t, "/pub", s.GoUp("/pub2/docs"))
		assert.Equal(t, "/pub/docs", s.GoUp("/pub/docs/sub"))
	})
}

func TestStore_IsHidden(t *testing.T) {
	s := NewStore("h")
	assert.True(t, s.IsHidden("/pub/.htaccess"))
	assert.False(t, s.IsHidden("/pub/readme.txt"))
}

func TestStore_CreateFolder(t *testing.T) {
	ctx := context.Background()
	conn := newFakeConn()
	conn.dirs["/"] = nil
	s := newTestStore(conn)

	require.NoError(t, s.CreateFolder(ctx, "/newdir"))

	t.Run("already_exists", func(t *testing.T) {
		err := s.CreateFolder(ctx, "/newdir")
		assert.ErrorIs(t, err, files.ErrAlreadyExists)
	})
}

func TestStore_CreateFile_ReadFile(t *testing.T) {
	ctx := context.Background()
	conn := newFakeConn()
	s := newTestStore(conn)

	require.NoError(t, s.CreateFile(ctx, "/pub/hello.txt", []byte("hello")))
	assert.Equal(t, []byte("hello"), conn.stored["/pub/hello.txt"])

	data, err := s.ReadFile(ctx, "/pub/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	t.Run("stor_error_propagates", func(t *testing.T) {
		conn2 := newFakeConn()
		conn2.storErr = errors.New("550 permission denied")
		s2 := newTestStore(conn2)
		err := s2.CreateFile(ctx, "/pub/x", nil)
		assert.Error(t, err)
	})
}

func TestStore_GetFileOrFolder(t *testing.T) {
	ctx := context.Background()
	conn := newFakeConn()
	conn.dirs["/pub"] = []*ftp.Entry{
		{Name: "readme.txt", Type: ftp.EntryTypeFile, Size: 512},
	}
	s := newTestStore(conn)

	t.Run("via_parent_listing", func(t *testing.T) {
		entry, err := s.GetFileOrFolder(ctx, "/pub/readme.txt")
		require.NoError(t, err)
		assert.Equal(t, "readme.txt", entry.Name())
	})

	t.Run("cached_after_listing", func(t *testing.T) {
		conn.listErr = errors.New("down")
		defer func() { conn.listErr = nil }()
		entry, err := s.GetFileOrFolder(ctx, "/pub/readme.txt")
		require.NoError(t, err)
		assert.Equal(t, "/pub/readme.txt", entry.Path())
	})

	t.Run("vanished_entry_has_unknown_meta", func(t *testing.T) {
		s.conn = conn
		entry, err := s.GetFileOrFolder(ctx, "/pub/gone.txt")
		require.NoError(t, err)
		_, ok := entry.Size()
		assert.False(t, ok)
		_, ok = entry.ModTime()
		assert.False(t, ok)
	})
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		conn := newFakeConn()
		s := newTestStore(conn)
		require.NoError(t, s.Delete(ctx, "/pub/a.txt"))
		assert.Equal(t, []string{"/pub/a.txt"}, conn.deleted)
	})

	t.Run("directory_fallback", func(t *testing.T) {
		conn := newFakeConn()
		conn.deleteErr = errors.New("550 is a directory")
		s := newTestStore(conn)
		require.NoError(t, s.Delete(ctx, "/pub/docs"))
		assert.Equal(t, []string{"/pub/docs"}, conn.deleted)
	})

	t.Run("both_fail", func(t *testing.T) {
		conn := newFakeConn()
		conn.deleteErr = errors.New("550 permission denied")
		conn.rmdErr = errors.New("550 permission denied")
		s := newTestStore(conn)
		assert.Error(t, s.Delete(ctx, "/pub/locked"))
	})
}

func TestStore_PathExists(t *testing.T) {
	ctx := context.Background()
	conn := newFakeConn()
	conn.dirs["/pub"] = []*ftp.Entry{
		{Name: "readme.txt", Type: ftp.EntryTypeFile},
	}
	s := newTestStore(conn)

	assert.True(t, s.PathExists(ctx, "/pub"), "directory via cwd")
	assert.True(t, s.PathExists(ctx, "/pub/readme.txt"), "file via parent listing")
	assert.False(t, s.PathExists(ctx, "/pub/missing.txt"))
}

func TestStore_Close(t *testing.T) {
	conn := newFakeConn()
	s := newTestStore(conn)
	require.NoError(t, s.Close())
	assert.True(t, conn.quit)
	require.NoError(t, s.Close(), "double close is a no-op")
}
