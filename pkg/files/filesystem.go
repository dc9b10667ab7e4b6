package files

import (
	"context"
	"errors"
)

// ErrAlreadyExists signals folder/file creation at an occupied path.
// Callers present it distinctly from generic I/O failure.
var ErrAlreadyExists = errors.New("already exists")

// ErrNotImplemented is returned by stores that do not support a given
// mutation, such as the read-only HTTP store.
var ErrNotImplemented = errors.New("not implemented")

// FileSystem is the uniform navigation/mutation API over heterogeneous
// backends. All operations are synchronous and blocking; errors always
// propagate to the caller, which decides how to render them.
type FileSystem interface {
	// Type is the backend tag, e.g. "local", "ftp", "http".
	Type() string

	// Root is the absolute path of the mount root.
	Root() string

	// RootTitle is a short human-readable label for the mount.
	RootTitle() string

	// ListContents enumerates the immediate children of path, or all
	// descendants when recursive is true. Ordering is unspecified;
	// callers sort with SortEntries before display.
	ListContents(ctx context.Context, path string, recursive bool) ([]Entry, error)

	// AbsolutePath joins path and name. Pure, no existence check.
	AbsolutePath(path, name string) string

	// CreateFolder fails with ErrAlreadyExists if the target exists.
	CreateFolder(ctx context.Context, path string) error

	// CreateFile creates or overwrites the file at path.
	CreateFile(ctx context.Context, path string, contents []byte) error

	PathExists(ctx context.Context, path string) bool

	// GoUp returns the parent path, clamped at the mount root:
	// GoUp(Root()) == Root().
	GoUp(path string) string

	IsHidden(path string) bool

	// GetFileOrFolder stats a single entry. When the entry disappears
	// between discovery and stat, it returns an Entry with unknown
	// size and timestamps rather than an error.
	GetFileOrFolder(ctx context.Context, path string) (Entry, error)

	ReadFile(ctx context.Context, path string) ([]byte, error)

	Rename(ctx context.Context, oldPath, newPath string) error

	Delete(ctx context.Context, path string) error
}
