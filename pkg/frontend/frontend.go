package frontend

import (
	"github.com/fileway/fileway/pkg/files"
)

// FeEvent carries the pointer position of the input event that
// triggered a callback.
type FeEvent struct {
	MouseX int
	MouseY int
}

// ContextMenuItem is one entry of the right-click menu. IsActive gates
// visibility against the current selection of absolute paths.
type ContextMenuItem struct {
	// Name is the stable identifier used by the configuration to
	// enable and order items.
	Name     string
	Label    string
	Action   func(selection []string)
	IsActive func(selection []string) bool
}

// ContextMenu is an open context menu widget.
type ContextMenu interface {
	Post(x, y int)
	Close()
}

// Bookmark is a labelled shortcut shown in the navigation pane.
type Bookmark struct {
	Label string
	// Mount is the mount name the bookmark belongs to; empty keeps
	// the current mount.
	Mount string
	Path  string
}

// Frontend is the complete UI-primitive contract the explorer needs.
// Implementations own all toolkit calls; the application logic never
// touches the toolkit directly.
type Frontend interface {
	CreateURLPane()
	CreateNavigationPane()
	CreateDetailsPane()

	BindKeyboardShortcut(keys string, callback func(FeEvent))

	// OnItemActivated registers the handler for opening a details-pane
	// entry (Enter or double-click). The handler receives the entry
	// name.
	OnItemActivated(callback func(name string))
	OnBookmarkActivated(callback func(b Bookmark))
	OnMountActivated(callback func(name string))

	// OnContextMenuRequested registers the handler for the pointer
	// gesture that opens the context menu (right click).
	OnContextMenuRequested(callback func(ev FeEvent))

	SetWindowTitle(title string)
	SetURLBarText(label, text string)

	// SetDetailsContents renders sorted entries. When selectItem names
	// an entry still present, its selection survives the refresh;
	// otherwise the first entry is selected.
	SetDetailsContents(entries []files.Entry, selectItem string)

	// DetailsSelection returns the names of the currently selected
	// entries, in display order.
	DetailsSelection() []string

	SetNavigationItems(bookmarks []Bookmark, mounts []string)
	HighlightBookmark(path string)

	MakeTextInputMessage(title, message string) (value string, ok bool)
	MakeOkCancelMessage(title, message string) bool
	MakeErrorMessage(title, message string)
	MakeInfoMessage(title, message string)

	MakeContextMenu(items []ContextMenuItem, selection []string) ContextMenu

	UpdateFont(font string, size int)

	Run() error
	Quit()
}
