package explorer

import (
	"os"
	"path/filepath"

	"github.com/fileway/fileway/pkg/frontend"
	"github.com/fileway/fileway/pkg/fsutils"
)

var osUserHomeDir = os.UserHomeDir

// wellKnownFolders are offered as bookmarks when they exist under the
// user's home directory.
var wellKnownFolders = []string{
	"Desktop",
	"Downloads",
	"Documents",
	"Music",
	"Pictures",
	"Videos",
}

// loadBookmarks seeds the navigation pane: Home first, then the
// well-known folders that exist, then user-defined bookmarks from the
// configuration.
func (e *Explorer) loadBookmarks() {
	e.bookmarks = nil
	home, err := osUserHomeDir()
	if err == nil {
		e.bookmarks = append(e.bookmarks, frontend.Bookmark{Label: "Home", Path: home})
		for _, label := range wellKnownFolders {
			dir := filepath.Join(home, label)
			if exists, err := fsutils.DirExists(dir); err == nil && exists {
				e.bookmarks = append(e.bookmarks, frontend.Bookmark{Label: label, Path: dir})
			}
		}
	}
	for _, b := range e.cfg.Bookmarks {
		dir := fsutils.ExpandHome(b.Path)
		if exists, err := fsutils.DirExists(dir); err == nil && exists {
			e.bookmarks = append(e.bookmarks, frontend.Bookmark{Label: b.Label, Path: dir})
		}
	}
}

// Bookmarks returns the navigation-pane bookmarks in display order.
func (e *Explorer) Bookmarks() []frontend.Bookmark {
	return e.bookmarks
}

// NavigateToBookmark jumps to a bookmark, switching mounts first when
// the bookmark names one.
func (e *Explorer) NavigateToBookmark(b frontend.Bookmark) {
	if b.Mount != "" && b.Mount != e.currentMount {
		if _, ok := e.registry.Get(b.Mount); !ok {
			e.fe.MakeErrorMessage("Error", "Unknown file system "+b.Mount+".")
			return
		}
		e.currentMount = b.Mount
	}
	e.SetCurrentPath(b.Path)
}

// NavigateToMount switches to the named mount at its root.
func (e *Explorer) NavigateToMount(name string) {
	if name == e.currentMount {
		if fs, ok := e.registry.Get(name); ok {
			e.SetCurrentPath(fs.Root())
		}
		return
	}
	e.SetCurrentMount(name)
}
