package localfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fileway/fileway/pkg/files"
)

var osReadDir = os.ReadDir
var osHostname = os.Hostname
var osMkdir = os.Mkdir
var osWriteFile = os.WriteFile
var osReadFile = os.ReadFile
var osStat = os.Stat
var osRemove = os.Remove
var osRename = os.Rename

const typeTag = "local"

var _ files.FileSystem = (*Store)(nil)

// Store is the local-disk file system rooted at a directory. The zero
// value is not usable; construct with NewStore.
type Store struct {
	title string
	root  string
}

func NewStore(root string) *Store {
	if root == "" {
		root = "/"
	}
	store := Store{root: filepath.Clean(root)}
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = store.root
	}
	return &store
}

func (s *Store) Type() string { return typeTag }

func (s *Store) Root() string { return s.root }

func (s *Store) RootTitle() string { return s.title }

func (s *Store) ListContents(ctx context.Context, dir string, recursive bool) ([]files.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	children, err := osReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	entries := make([]files.Entry, 0, len(children))
	for _, child := range children {
		fullPath := filepath.Join(dir, child.Name())
		entries = append(entries, entryFromDirEntry(child, fullPath))
		if recursive && child.IsDir() {
			descendants, err := s.ListContents(ctx, fullPath, true)
			if err != nil {
				// The subtree may have vanished mid-walk; its parent
				// entry is already in the result.
				continue
			}
			entries = append(entries, descendants...)
		}
	}
	return entries, nil
}

func (s *Store) AbsolutePath(dir, name string) string {
	return filepath.Join(dir, name)
}

func (s *Store) CreateFolder(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := osMkdir(path, 0o755); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s: %w", path, files.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (s *Store) CreateFile(ctx context.Context, path string, contents []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return osWriteFile(path, contents, 0o644)
}

func (s *Store) PathExists(ctx context.Context, path string) bool {
	if ctx.Err() != nil {
		return false
	}
	_, err := osStat(path)
	return err == nil
}

// GoUp returns the parent directory, never escaping the mount root.
func (s *Store) GoUp(path string) string {
	clean := filepath.Clean(path)
	if clean == s.root {
		return s.root
	}
	parent := filepath.Dir(clean)
	if !s.contains(parent) {
		return s.root
	}
	return parent
}

func (s *Store) contains(path string) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (s *Store) GetFileOrFolder(ctx context.Context, path string) (files.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	info, err := osStat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// The entry raced a delete between discovery and stat;
			// report it with unknown size and timestamps.
			return files.NewFile(name, path), nil
		}
		return nil, err
	}
	if info.IsDir() {
		return files.NewFolder(name, path, files.ModifiedAt(info.ModTime())), nil
	}
	return files.NewFile(name, path, files.Size(info.Size()), files.ModifiedAt(info.ModTime())), nil
}

func (s *Store) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadFile(path)
}

func (s *Store) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return osRename(oldPath, newPath)
}

func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return osRemove(path)
}

func entryFromDirEntry(child os.DirEntry, fullPath string) files.Entry {
	var options []files.EntryOption
	if fi, err := child.Info(); err == nil {
		options = append(options, files.ModifiedAt(fi.ModTime()))
		if !child.IsDir() {
			options = append(options, files.Size(fi.Size()))
		}
	}
	if child.IsDir() {
		return files.NewFolder(child.Name(), fullPath, options...)
	}
	return files.NewFile(child.Name(), fullPath, options...)
}
