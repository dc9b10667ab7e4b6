package files

import (
	"path"
	"time"
)

// Entry is an immutable snapshot of a file or folder taken at listing
// time. It becomes stale once the underlying store changes and carries
// no reference back to the store that produced it.
type Entry interface {
	Name() string
	Path() string
	IsDir() bool
	// Size reports the size in bytes. ok is false for folders and for
	// files whose stat raced a concurrent delete.
	Size() (size int64, ok bool)
	// ModTime reports the last-modified time when known.
	ModTime() (t time.Time, ok bool)
}

type EntryOption func(*entryMeta)

type entryMeta struct {
	size     *int64
	created  *time.Time
	modified *time.Time
}

func Size(v int64) EntryOption {
	return func(m *entryMeta) {
		m.size = &v
	}
}

func CreatedAt(v time.Time) EntryOption {
	return func(m *entryMeta) {
		m.created = &v
	}
}

func ModifiedAt(v time.Time) EntryOption {
	return func(m *entryMeta) {
		m.modified = &v
	}
}

var _ Entry = (*File)(nil)

type File struct {
	name string
	path string
	ext  string
	meta entryMeta
}

func NewFile(name, fullPath string, o ...EntryOption) File {
	f := File{
		name: name,
		path: fullPath,
		ext:  path.Ext(name),
	}
	for _, opt := range o {
		opt(&f.meta)
	}
	return f
}

func (f File) Name() string { return f.name }
func (f File) Path() string { return f.path }
func (f File) IsDir() bool  { return false }

// Ext is the extension tag including the leading dot, or "".
func (f File) Ext() string { return f.ext }

func (f File) Size() (int64, bool) {
	if f.meta.size == nil {
		return 0, false
	}
	return *f.meta.size, true
}

func (f File) ModTime() (time.Time, bool) {
	if f.meta.modified == nil {
		return time.Time{}, false
	}
	return *f.meta.modified, true
}

func (f File) CreatedAt() (time.Time, bool) {
	if f.meta.created == nil {
		return time.Time{}, false
	}
	return *f.meta.created, true
}

var _ Entry = (*Folder)(nil)

type Folder struct {
	name string
	path string
	meta entryMeta
}

func NewFolder(name, fullPath string, o ...EntryOption) Folder {
	f := Folder{
		name: name,
		path: fullPath,
	}
	for _, opt := range o {
		opt(&f.meta)
	}
	return f
}

func (f Folder) Name() string { return f.name }
func (f Folder) Path() string { return f.path }
func (f Folder) IsDir() bool  { return true }

func (f Folder) Size() (int64, bool) { return 0, false }

func (f Folder) ModTime() (time.Time, bool) {
	if f.meta.modified == nil {
		return time.Time{}, false
	}
	return *f.meta.modified, true
}
